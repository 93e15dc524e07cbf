package middleware

import (
	"strings"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Keys of the values the auth middleware stores on echo.Context.
const (
	ContextKeySessionID = "sessionID"
	ContextKeyOwnerID   = "ownerID"
	ContextKeyIdentity  = "identity"
)

// tokenQueryParam carries the session token for clients that cannot set headers (EventSource).
const tokenQueryParam = "access_token"

// AuthMiddleware resolves the session named by the bearer session token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, sessions: sessions}
}

// Authenticate validates the session token, resolves the live session and places it in the
// request context, where the gateway picks up its credential. Each request counts as user
// interaction for the idle timer.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing or malformed")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		ctx := c.Request().Context()
		manager, err := m.sessions.Resolve(ctx, claims.SessionID)
		if err != nil {
			return errors.WithStack(err)
		}

		identity := manager.Identity()
		if identity == nil || identity.ID != claims.UserID {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "session does not belong to token subject")
		}

		c.Set(ContextKeySessionID, claims.SessionID)
		c.Set(ContextKeyOwnerID, identity.ID)
		c.Set(ContextKeyIdentity, identity)
		c.SetRequest(c.Request().WithContext(session.WithManager(ctx, manager)))

		return next(c)
	}
}

// Actor returns the identity resolved by Authenticate.
func Actor(c echo.Context) (*entity.Identity, error) {
	identity, ok := c.Get(ContextKeyIdentity).(*entity.Identity)
	if !ok || identity == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no identity on request")
	}

	return identity, nil
}

// SessionID returns the session id resolved by Authenticate.
func SessionID(c echo.Context) (string, error) {
	id, ok := c.Get(ContextKeySessionID).(string)
	if !ok || id == "" {
		return "", errors.Wrap(domainerrors.ErrUnauthenticated, "no session on request")
	}

	return id, nil
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		token := c.QueryParam(tokenQueryParam)

		return token, token != ""
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}

	return token, true
}
