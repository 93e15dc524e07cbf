package cache

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the credential cache, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Clock  clockwork.Clock
	Logger *slog.Logger
}

// NewCredentialCache picks the cache backend from configuration.
func NewCredentialCache(params Params) (service.CredentialCache, error) {
	cfg := params.Config.CredentialCache

	switch cfg.Provider {
	case "", config.ProviderMemory:
		params.Logger.Info("Using in-memory credential cache")

		return NewMemoryCredentialCache(params.Clock), nil

	case config.ProviderRedis:
		client, err := NewRedisClient(params.Ctx, RedisOptions{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}, params.Logger)
		if err != nil {
			return nil, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				params.Logger.Info("Closing Redis client")

				return errors.WithStack(client.Close())
			},
		})

		return NewRedisCredentialCache(client, cfg.KeyPrefix), nil

	default:
		return nil, errors.Errorf("unknown credential cache provider: %s", cfg.Provider)
	}
}
