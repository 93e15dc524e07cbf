package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/realtime"
)

// PublicStore is a read-only view over a foreign store: its active products and its settings.
type PublicStore struct {
	OwnerID  string
	Products *realtime.View[*entity.Product]
	Settings *realtime.View[*entity.StoreSettings]
}

// StoreSettings returns the settings document, or nil while absent.
func (s *PublicStore) StoreSettings() *entity.StoreSettings {
	items := s.Settings.Items()
	if len(items) == 0 {
		return nil
	}

	return items[0]
}

// Found reports whether the store has published its settings.
func (s *PublicStore) Found() bool {
	return s.StoreSettings() != nil
}

// Close cancels both live queries.
func (s *PublicStore) Close() {
	s.Products.Close()
	s.Settings.Close()
}

// StorefrontUsecase reads any store's published catalog and composes checkout links.
type StorefrontUsecase interface {
	// Open starts both live queries and waits for their first snapshots.
	// The caller owns the returned store and must Close it.
	Open(ctx context.Context, ownerID string) (*PublicStore, error)

	// Checkout resolves lines against the store's active catalog and returns the messaging deep link.
	Checkout(ctx context.Context, ownerID string, input *CheckoutInput) (*CheckoutOutput, error)
}

// --- Input DTOs ---

// CheckoutLine is one product and quantity of a checkout request.
type CheckoutLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// CheckoutInput is the cart submitted by a storefront visitor.
type CheckoutInput struct {
	Items []CheckoutLine `json:"items" validate:"required,min=1,dive"`
}

// --- Output DTOs ---

// CheckoutOutput carries the composed order message and its deep link.
type CheckoutOutput struct {
	URL        string `json:"url"`
	Message    string `json:"message"`
	TotalItems int    `json:"totalItems"`
	TotalPrice string `json:"totalPrice"`
}
