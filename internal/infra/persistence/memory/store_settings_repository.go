package memory

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/realtime"

	"github.com/jonboulle/clockwork"
)

// StoreSettingsRepository implements repository.StoreSettingsRepository in memory.
type StoreSettingsRepository struct {
	table *table[*entity.StoreSettings]
	clock clockwork.Clock
}

// NewStoreSettingsRepository creates an empty settings collection.
func NewStoreSettingsRepository(clock clockwork.Clock) *StoreSettingsRepository {
	return &StoreSettingsRepository{
		table: newTable((*entity.StoreSettings).Clone),
		clock: clock,
	}
}

var _ repository.StoreSettingsRepository = (*StoreSettingsRepository)(nil)

func (repo *StoreSettingsRepository) FindByOwner(_ context.Context, ownerID string) (*entity.StoreSettings, error) {
	settings, ok := repo.table.get(ownerID)
	if !ok {
		return nil, repository.ErrStoreSettingsNotFound
	}

	return settings, nil
}

func (repo *StoreSettingsRepository) Create(_ context.Context, settings *entity.StoreSettings) error {
	if _, exists := repo.table.get(settings.UserID); exists {
		return repository.ErrStoreSettingsExist
	}

	now := repo.clock.Now()
	stored := settings.Clone()
	stored.ID = settings.UserID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.WorkingDays == nil {
		stored.WorkingDays = []string{}
	}
	repo.table.put(stored.ID, stored)

	return nil
}

func (repo *StoreSettingsRepository) Update(_ context.Context, ownerID string, patch entity.StoreSettingsPatch) error {
	now := repo.clock.Now()
	if !repo.table.mutate(ownerID, func(s *entity.StoreSettings) { s.Apply(patch, now) }) {
		return repository.ErrStoreSettingsNotFound
	}

	return nil
}

func (repo *StoreSettingsRepository) Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.StoreSettings], error) {
	if ownerID == "" {
		return nil, errors.New("store settings query requires an owner")
	}

	return repo.table.watch(ctx, func(s *entity.StoreSettings) bool { return s.ID == ownerID }), nil
}

// Watchers returns the number of open live queries.
func (repo *StoreSettingsRepository) Watchers() int {
	return repo.table.watcherCount()
}
