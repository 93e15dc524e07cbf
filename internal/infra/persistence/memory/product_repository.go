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

// ProductRepository implements repository.ProductRepository in memory.
type ProductRepository struct {
	table *table[*entity.Product]
	clock clockwork.Clock
}

// NewProductRepository creates an empty product collection.
func NewProductRepository(clock clockwork.Clock) *ProductRepository {
	return &ProductRepository{
		table: newTable((*entity.Product).Clone),
		clock: clock,
	}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Seed stores a product as is, keeping its id and timestamps. Used to load fixtures,
// including records in the earlier schema after upgrading them.
func (repo *ProductRepository) Seed(product *entity.Product) {
	repo.table.put(product.ID, product)
}

// FindByID retrieves a product by id.
func (repo *ProductRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	product, ok := repo.table.get(id)
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

// Create stores a product under a new id.
func (repo *ProductRepository) Create(_ context.Context, product *entity.Product) (string, error) {
	now := repo.clock.Now()
	stored := product.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Categories == nil {
		stored.Categories = []string{}
	}
	if stored.Images == nil {
		stored.Images = []entity.ProductImage{}
	}
	repo.table.put(stored.ID, stored)

	return stored.ID, nil
}

// Update applies a partial patch.
func (repo *ProductRepository) Update(_ context.Context, id string, patch entity.ProductPatch) error {
	now := repo.clock.Now()
	if !repo.table.mutate(id, func(p *entity.Product) { p.Apply(patch, now) }) {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (repo *ProductRepository) Delete(_ context.Context, id string) error {
	if !repo.table.remove(id) {
		return repository.ErrProductNotFound
	}

	return nil
}

// Watch opens a live query over the owner's products.
func (repo *ProductRepository) Watch(ctx context.Context, query repository.ProductQuery) (realtime.Subscription[*entity.Product], error) {
	if query.OwnerID == "" {
		return nil, errors.New("product query requires an owner")
	}

	return repo.table.watch(ctx, func(p *entity.Product) bool {
		return p.UserID == query.OwnerID && (query.Status == "" || p.Status == query.Status)
	}), nil
}

// Watchers returns the number of open live queries.
func (repo *ProductRepository) Watchers() int {
	return repo.table.watcherCount()
}
