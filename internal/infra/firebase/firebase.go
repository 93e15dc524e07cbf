// Package firebase bootstraps the Firebase app and the clients derived from it.
package firebase

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/infra/auth/identitytoolkit"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Params holds dependencies injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewApp initializes the Firebase app from the firebase config section.
func NewApp(params Params) (*firebase.App, error) {
	cfg := params.Config.Firebase

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	params.Logger.Info("Firebase app initialized", slog.String("project_id", cfg.ProjectID))

	return app, nil
}

// NewFirestore opens the Firestore client and closes it on shutdown.
func NewFirestore(params Params, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// NewTokenRevoker returns the Firebase Auth admin client when service credentials allow it.
// Without them sign-out stays local to the service.
func NewTokenRevoker(params Params, app *firebase.App) identitytoolkit.TokenRevoker {
	if params.Config.Firebase.CredentialsPath == "" {
		params.Logger.Info("Firebase credentials not configured, refresh token revocation disabled")

		return nil
	}

	client, err := app.Auth(params.Ctx)
	if err != nil {
		params.Logger.Warn("Firebase Auth client unavailable, refresh token revocation disabled",
			slog.Any("error", err),
		)

		return nil
	}

	return client
}
