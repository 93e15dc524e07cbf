package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler serves the merchant's categories and business-type templates.
type CategoryHandler struct {
	uc         usecase.CategoryUsecase
	workspaces usecase.WorkspaceUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, workspaces usecase.WorkspaceUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc, workspaces: workspaces}
}

// List returns the current category snapshot.
func (h *CategoryHandler) List(c echo.Context) error {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, ws.Categories.Items(), "")
}

// Stream pushes every category snapshot as a server-sent event.
func (h *CategoryHandler) Stream(c echo.Context) error {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}

	return response.Stream(c, "categories", ws.Categories.Watch(c.Request().Context()), 0)
}

// Create adds a category owned by the acting identity.
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.CreateCategoryInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	id, err := h.uc.Create(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"id": id}, "Categoria criada com sucesso")
}

// Update patches the supplied fields of a category. Default categories are refused.
func (h *CategoryHandler) Update(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.UpdateCategoryInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	if err := h.uc.Update(c.Request().Context(), actor, c.Param("id"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Categoria atualizada com sucesso")
}

// Delete removes a category. Default categories are refused.
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Categoria excluída com sucesso")
}

// Templates lists the business-type templates.
func (h *CategoryHandler) Templates(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Templates(), "")
}

// ApplyTemplate creates the template's categories the merchant does not have yet.
func (h *CategoryHandler) ApplyTemplate(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	created, err := h.uc.ApplyTemplate(c.Request().Context(), actor, c.Param("templateId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]int{"created": created}, "Categorias aplicadas com sucesso")
}
