package memory

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/realtime"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// CategoryRepository implements repository.CategoryRepository in memory.
type CategoryRepository struct {
	table *table[*entity.Category]
	clock clockwork.Clock
}

// NewCategoryRepository creates an empty category collection.
func NewCategoryRepository(clock clockwork.Clock) *CategoryRepository {
	return &CategoryRepository{
		table: newTable(cloneCategory),
		clock: clock,
	}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c

	return &cp
}

// Seed stores a category as is.
func (repo *CategoryRepository) Seed(category *entity.Category) {
	repo.table.put(category.ID, category)
}

func (repo *CategoryRepository) FindByID(_ context.Context, id string) (*entity.Category, error) {
	category, ok := repo.table.get(id)
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}

	return category, nil
}

func (repo *CategoryRepository) ListByOwner(_ context.Context, ownerID string) (entity.Categories, error) {
	return repo.table.list(func(c *entity.Category) bool { return c.UserID == ownerID }), nil
}

func (repo *CategoryRepository) Create(_ context.Context, category *entity.Category) (string, error) {
	now := repo.clock.Now()
	stored := cloneCategory(category)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	repo.table.put(stored.ID, stored)

	return stored.ID, nil
}

func (repo *CategoryRepository) Update(_ context.Context, id string, patch entity.CategoryPatch) error {
	now := repo.clock.Now()
	if !repo.table.mutate(id, func(c *entity.Category) { c.Apply(patch, now) }) {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *CategoryRepository) Delete(_ context.Context, id string) error {
	if !repo.table.remove(id) {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *CategoryRepository) Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Category], error) {
	if ownerID == "" {
		return nil, errors.New("category query requires an owner")
	}

	return repo.table.watch(ctx, func(c *entity.Category) bool { return c.UserID == ownerID }), nil
}

// Watchers returns the number of open live queries.
func (repo *CategoryRepository) Watchers() int {
	return repo.table.watcherCount()
}
