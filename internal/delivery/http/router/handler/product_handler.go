package handler

import (
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultLowStockThreshold = 5

// ProductHandler serves the merchant's catalog.
type ProductHandler struct {
	uc                usecase.ProductUsecase
	workspaces        usecase.WorkspaceUsecase
	lowStockThreshold int
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, workspaces usecase.WorkspaceUsecase, cfg *config.Config) *ProductHandler {
	threshold := defaultLowStockThreshold
	if cfg.Storefront != nil && cfg.Storefront.LowStockThreshold > 0 {
		threshold = cfg.Storefront.LowStockThreshold
	}

	return &ProductHandler{
		uc:                uc,
		workspaces:        workspaces,
		lowStockThreshold: threshold,
	}
}

// List returns the current catalog snapshot, narrowed by the query filters.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.snapshot(c)
	if err != nil {
		return err
	}

	filters, err := bindProductFilters(c)
	if err != nil {
		return response.BindingError(c, "INVALID_FILTER", "Invalid product filters")
	}

	return response.Success(c, http.StatusOK, products.Filter(filters), "")
}

// Stats returns the catalog aggregates.
func (h *ProductHandler) Stats(c echo.Context) error {
	products, err := h.snapshot(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, products.Stats(h.lowStockThreshold), "")
}

// Get returns one product of the current snapshot.
func (h *ProductHandler) Get(c echo.Context) error {
	products, err := h.snapshot(c)
	if err != nil {
		return err
	}

	product := products.ByID(c.Param("id"))
	if product == nil {
		return errors.Wrap(domainerrors.ErrProductNotFound, "product not in snapshot")
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Stream pushes every catalog snapshot as a server-sent event.
func (h *ProductHandler) Stream(c echo.Context) error {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}

	return response.Stream(c, "products", ws.Products.Watch(c.Request().Context()), 0)
}

// Create adds a product owned by the acting identity.
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.CreateProductInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	id, err := h.uc.Create(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"id": id}, "Produto criado com sucesso")
}

// Update patches the supplied fields of a product.
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.UpdateProductInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := h.uc.Update(c.Request().Context(), actor, c.Param("id"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Produto atualizado com sucesso")
}

// UpdateStock sets the stock of a product.
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.UpdateStockInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}

	if err := h.uc.UpdateStock(c.Request().Context(), actor, c.Param("id"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Estoque atualizado com sucesso")
}

// UpdateStatus sets the status of a product.
func (h *ProductHandler) UpdateStatus(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.UpdateStatusInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), actor, c.Param("id"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Status atualizado com sucesso")
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Produto excluído com sucesso")
}

func (h *ProductHandler) snapshot(c echo.Context) (entity.Products, error) {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return nil, err
	}

	return entity.Products(ws.Products.Items()), nil
}

func bindProductFilters(c echo.Context) (entity.ProductFilters, error) {
	var (
		filters            entity.ProductFilters
		status             string
		minPrice, maxPrice float64
	)

	err := echo.QueryParamsBinder(c).
		String("category", &filters.Category).
		String("status", &status).
		Float64("minPrice", &minPrice).
		Float64("maxPrice", &maxPrice).
		Bool("inStock", &filters.InStock).
		String("search", &filters.Search).
		BindError()
	if err != nil {
		return filters, errors.WithStack(err)
	}

	if status != "" {
		filters.Status = entity.ProductStatus(status)
		if !filters.Status.IsValid() {
			return filters, errors.Errorf("unknown status %q", status)
		}
	}
	if c.QueryParam("minPrice") != "" {
		filters.MinPrice = &minPrice
	}
	if c.QueryParam("maxPrice") != "" {
		filters.MaxPrice = &maxPrice
	}

	return filters, nil
}

func currentWorkspace(c echo.Context, workspaces usecase.WorkspaceUsecase) (*usecase.Workspace, error) {
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return nil, err
	}

	ws, err := workspaces.Get(sessionID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return ws, nil
}
