package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/realtime"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the document operations for categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Category, error)

	// ListByOwner reads the owner's categories once, without opening a live query.
	ListByOwner(ctx context.Context, ownerID string) (entity.Categories, error)

	// Create persists a new category with server-assigned timestamps and returns its id.
	Create(ctx context.Context, category *entity.Category) (string, error)

	// Update applies only the fields set in patch and refreshes updatedAt.
	Update(ctx context.Context, id string, patch entity.CategoryPatch) error

	Delete(ctx context.Context, id string) error

	// Watch opens a live query over the owner's categories.
	Watch(ctx context.Context, ownerID string) (realtime.Subscription[*entity.Category], error)
}
