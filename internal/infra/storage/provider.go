package storage

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/infra/gateway"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the object store, injected by Fx
type Params struct {
	fx.In

	Lc      fx.Lifecycle
	Ctx     context.Context
	Config  *config.Config
	Gateway *gateway.Gateway
	Logger  *slog.Logger
}

// NewObjectStore picks the object store backend from configuration.
func NewObjectStore(params Params) (service.ObjectStore, error) {
	cfg := params.Config.ObjectStore

	switch cfg.Provider {
	case "", config.ProviderFirebase:
		params.Logger.Info("Using Firebase Storage object store",
			slog.String("bucket", params.Config.Firebase.StorageBucket),
		)

		return NewFirebaseStore(params.Gateway, cfg.StorageEndpoint, params.Config.Firebase.StorageBucket), nil

	case config.ProviderBlob:
		store, err := OpenBlobStore(params.Ctx, cfg.BucketURL, cfg.PublicURLFormat, params.Logger)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using blob object store", slog.String("bucket_url", cfg.BucketURL))

		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})

		return store, nil

	default:
		return nil, errors.Errorf("unknown object store provider: %s", cfg.Provider)
	}
}
