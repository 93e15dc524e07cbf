package handler

import (
	"context"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StorefrontHandler serves the public, read-only storefront of any merchant.
type StorefrontHandler struct {
	uc usecase.StorefrontUsecase
}

// NewStorefrontHandler is the constructor for StorefrontHandler, injected by Fx.
func NewStorefrontHandler(uc usecase.StorefrontUsecase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// PublicStoreResponse is the published part of a store.
type PublicStoreResponse struct {
	Store    *entity.StoreSettings `json:"store"`
	Products []*entity.Product     `json:"products"`
}

// Get returns the store settings and its active products.
func (h *StorefrontHandler) Get(c echo.Context) error {
	store, err := h.uc.Open(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer store.Close()

	if !store.Found() {
		return errors.Wrap(domainerrors.ErrStoreNotFound, "store has no settings")
	}

	return response.Success(c, http.StatusOK, publicStoreResponse(store), "")
}

// Stream pushes the store and its active products whenever either changes. A store
// without settings is streamed too, with a null store, so clients can wait for it.
func (h *StorefrontHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.uc.Open(ctx, c.Param("userId"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer store.Close()

	return response.Stream(c, "storefront", mergeStore(ctx, store), 0)
}

// Checkout composes the messaging deep link for the submitted cart.
func (h *StorefrontHandler) Checkout(c echo.Context) error {
	input := new(usecase.CheckoutInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart")
	}

	output, err := h.uc.Checkout(c.Request().Context(), c.Param("userId"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

func publicStoreResponse(store *usecase.PublicStore) PublicStoreResponse {
	return PublicStoreResponse{
		Store:    store.StoreSettings(),
		Products: store.Products.Items(),
	}
}

// mergeStore fans both live views into one stream of combined snapshots.
func mergeStore(ctx context.Context, store *usecase.PublicStore) <-chan PublicStoreResponse {
	out := make(chan PublicStoreResponse)
	products := store.Products.Watch(ctx)
	settings := store.Settings.Watch(ctx)

	go func() {
		defer close(out)
		for products != nil || settings != nil {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-products:
				if !ok {
					products = nil

					continue
				}
			case _, ok := <-settings:
				if !ok {
					settings = nil

					continue
				}
			}

			select {
			case out <- publicStoreResponse(store):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
