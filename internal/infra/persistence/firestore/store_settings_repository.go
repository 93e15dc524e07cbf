package firestore

import (
	"context"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/realtime"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// storeSettingsRepository implements the repository.StoreSettingsRepository interface.
type storeSettingsRepository struct {
	client *firestore.Client
}

// NewStoreSettingsRepository is the constructor for storeSettingsRepository.
func NewStoreSettingsRepository(client *firestore.Client) repository.StoreSettingsRepository {
	return &storeSettingsRepository{
		client: client,
	}
}

func (repo *storeSettingsRepository) doc(ownerID string) *firestore.DocumentRef {
	return repo.client.Collection(constants.CollectionStoreSettings).Doc(ownerID)
}

// FindByOwner retrieves the owner's settings document.
func (repo *storeSettingsRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.StoreSettings, error) {
	doc, err := repo.doc(ownerID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrStoreSettingsNotFound
		}

		return nil, errors.Wrap(err, "failed to find store settings")
	}

	return decodeStoreSettings(doc)
}

// Create writes the full document keyed by the owner id.
func (repo *storeSettingsRepository) Create(ctx context.Context, settings *entity.StoreSettings) error {
	settingsM := fromStoreSettingsDomain(settings)
	if _, err := repo.doc(settings.UserID).Create(ctx, settingsM); err != nil {
		if isAlreadyExists(err) {
			return repository.ErrStoreSettingsExist
		}

		return errors.Wrap(err, "failed to create store settings")
	}

	return nil
}

// Update applies a partial patch.
func (repo *storeSettingsRepository) Update(ctx context.Context, ownerID string, patch entity.StoreSettingsPatch) error {
	if _, err := repo.doc(ownerID).Update(ctx, storeSettingsUpdates(patch)); err != nil {
		if isNotFound(err) {
			return repository.ErrStoreSettingsNotFound
		}

		return errors.Wrap(err, "failed to update store settings")
	}

	return nil
}

// Watch follows the owner's settings document.
func (repo *storeSettingsRepository) Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.StoreSettings], error) {
	if ownerID == "" {
		return nil, errors.New("store settings query requires an owner")
	}

	return watchDocument(ctx, repo.doc(ownerID), decodeStoreSettings), nil
}

func decodeStoreSettings(doc *firestore.DocumentSnapshot) (*entity.StoreSettings, error) {
	var settingsM model.StoreSettingsModel
	if err := doc.DataTo(&settingsM); err != nil {
		return nil, errors.Wrapf(err, "decode store settings %s", doc.Ref.ID)
	}
	settingsM.ID = doc.Ref.ID

	return toStoreSettingsDomain(&settingsM), nil
}
