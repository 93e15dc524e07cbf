// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/realtime"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductQuery scopes a live product query. Status filters at the query when set.
type ProductQuery struct {
	OwnerID string
	Status  entity.ProductStatus
}

// ProductRepository defines the document operations for products.
type ProductRepository interface {
	// FindByID retrieves a single product, upgraded to the canonical schema.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// Create persists a new product with server-assigned timestamps and returns its id.
	Create(ctx context.Context, product *entity.Product) (string, error)

	// Update applies only the fields set in patch and refreshes updatedAt.
	Update(ctx context.Context, id string, patch entity.ProductPatch) error

	// Delete removes the product.
	Delete(ctx context.Context, id string) error

	// Watch opens a live query delivering full snapshots of the matching products.
	Watch(ctx context.Context, query ProductQuery) (realtime.Subscription[*entity.Product], error)
}
