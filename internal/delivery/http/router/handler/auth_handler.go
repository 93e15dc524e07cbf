// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler exposes the session lifecycle.
type AuthHandler struct {
	uc usecase.SessionUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login signs the merchant in and returns the session token.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Logout ends the current session. Ending an already ended session succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// LogoutEverywhere ends the current session and revokes the identity's other sessions.
func (h *AuthHandler) LogoutEverywhere(c echo.Context) error {
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	if err := h.uc.LogoutEverywhere(c.Request().Context(), sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful on every device")
}

// Refresh force-renews the session credential.
func (h *AuthHandler) Refresh(c echo.Context) error {
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	info, err := h.uc.Refresh(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "Session refreshed")
}

// Session describes the current session.
func (h *AuthHandler) Session(c echo.Context) error {
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	info, err := h.uc.Info(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
