package service

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

var (
	// ErrSignInRejected is returned when the provider refuses the email/password pair.
	ErrSignInRejected = errors.New("sign-in rejected")

	// ErrTooManyAttempts is returned when the provider throttles sign-in.
	ErrTooManyAttempts = errors.New("too many sign-in attempts")

	// ErrRefreshRejected is returned when the refresh token is revoked or expired.
	ErrRefreshRejected = errors.New("refresh token rejected")
)

// SignInResult is the outcome of a successful email/password sign-in.
type SignInResult struct {
	UserID      string
	Email       string
	DisplayName string
	Credential  entity.Credential
}

// AuthProvider is the external identity backend.
type AuthProvider interface {
	// SignIn verifies email and password and returns a fresh credential.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// Refresh mints a new credential from a refresh token, regardless of the current one's expiry.
	Refresh(ctx context.Context, refreshToken string) (*entity.Credential, error)

	// RevokeSessions invalidates every refresh token of the user, ending the user's sessions
	// on all devices. Ending a single session never calls it.
	RevokeSessions(ctx context.Context, userID string) error
}
