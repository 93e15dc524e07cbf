// Package persistence selects the document store backing the synchronization stores.
package persistence

import (
	"storefront/config"
	"storefront/internal/domain/repository"
	infrafirebase "storefront/internal/infra/firebase"
	"storefront/internal/infra/persistence/firestore"
	"storefront/internal/infra/persistence/memory"

	firebase "firebase.google.com/go/v4"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the repositories, injected by Fx
type Params struct {
	fx.In

	Firebase infrafirebase.Params
	App      *firebase.App
	Clock    clockwork.Clock
}

// Repositories is the set of document repositories provided to the usecases
type Repositories struct {
	fx.Out

	Products repository.ProductRepository
	Category repository.CategoryRepository
	Settings repository.StoreSettingsRepository
}

// New opens the configured document store.
func New(params Params) (Repositories, error) {
	cfg := params.Firebase.Config.DocumentStore
	logger := params.Firebase.Logger

	switch cfg.Provider {
	case "", config.ProviderFirestore:
		client, err := infrafirebase.NewFirestore(params.Firebase, params.App)
		if err != nil {
			return Repositories{}, err
		}
		logger.Info("Using Firestore document store")

		return Repositories{
			Products: firestore.NewProductRepository(client, logger),
			Category: firestore.NewCategoryRepository(client, logger),
			Settings: firestore.NewStoreSettingsRepository(client),
		}, nil

	case config.ProviderMemory:
		logger.Warn("Using in-memory document store, data is lost on restart")

		return Repositories{
			Products: memory.NewProductRepository(params.Clock),
			Category: memory.NewCategoryRepository(params.Clock),
			Settings: memory.NewStoreSettingsRepository(params.Clock),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown document store provider: %s", cfg.Provider)
	}
}

