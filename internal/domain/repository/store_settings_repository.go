package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/realtime"
)

var (
	// ErrStoreSettingsNotFound is returned when the owner has never saved a store profile.
	ErrStoreSettingsNotFound = errors.New("store settings not found")

	// ErrStoreSettingsExist is returned by Create when the owner already has a document.
	ErrStoreSettingsExist = errors.New("store settings already exist")
)

// StoreSettingsRepository stores one settings document per owner, keyed by the owner id.
type StoreSettingsRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*entity.StoreSettings, error)

	// Create writes the full document under the owner id with server-assigned timestamps.
	Create(ctx context.Context, settings *entity.StoreSettings) error

	// Update applies only the fields set in patch and refreshes updatedAt.
	Update(ctx context.Context, ownerID string, patch entity.StoreSettingsPatch) error

	// Watch follows the owner's document. A missing document is delivered as an empty snapshot.
	Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.StoreSettings], error)
}
