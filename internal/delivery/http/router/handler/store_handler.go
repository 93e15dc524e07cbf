package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler serves the merchant's store profile.
type StoreHandler struct {
	uc         usecase.StoreProfileUsecase
	workspaces usecase.WorkspaceUsecase
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreProfileUsecase, workspaces usecase.WorkspaceUsecase) *StoreHandler {
	return &StoreHandler{uc: uc, workspaces: workspaces}
}

// Get returns the settings held by the workspace. A store never saved is not found.
func (h *StoreHandler) Get(c echo.Context) error {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}

	items := ws.Settings.Items()
	if len(items) == 0 {
		return errors.Wrap(domainerrors.ErrStoreNotFound, "store settings not saved yet")
	}

	return response.Success(c, http.StatusOK, items[0], "")
}

// Save creates the settings on first use and patches the supplied fields afterwards.
func (h *StoreHandler) Save(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(usecase.SaveStoreSettingsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store settings input")
	}

	settings, err := h.uc.Save(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Configurações salvas com sucesso")
}

// Stream pushes every settings snapshot as a server-sent event.
func (h *StoreHandler) Stream(c echo.Context) error {
	ws, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}

	return response.Stream(c, "store", ws.Settings.Watch(c.Request().Context()), 0)
}

// Link returns the public storefront URL of the merchant.
func (h *StoreHandler) Link(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"url": h.uc.StoreLink(actor.ID)}, "")
}

// LinkQR renders the public storefront URL as a PNG QR code.
func (h *StoreHandler) LinkQR(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	png, err := h.uc.StoreLinkQR(actor.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
