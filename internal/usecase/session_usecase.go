// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/session"
)

// --- Input DTOs ---

// LoginInput defines the data required for a merchant to sign in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// --- Output DTOs ---

// LoginOutput returns the service-issued session token after a successful sign-in.
type LoginOutput struct {
	SessionToken    string           `json:"sessionToken"`
	Identity        *entity.Identity `json:"identity"`
	TokenExpiryTime time.Time        `json:"tokenExpiryTime"`
}

// SessionInfo describes a live session.
type SessionInfo struct {
	SessionID       string           `json:"sessionId"`
	State           string           `json:"state"`
	Identity        *entity.Identity `json:"identity"`
	TokenExpiryTime time.Time        `json:"tokenExpiryTime"`
}

// SessionUsecase keeps the registry of live sessions, one Session Manager each.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Resolve returns the live session and counts the call as user interaction.
	// A session missing from memory is restored from the credential cache.
	Resolve(ctx context.Context, sessionID string) (*session.Manager, error)

	Logout(ctx context.Context, sessionID string) error

	// LogoutEverywhere revokes the identity's credentials at the auth provider, so every
	// session of the identity ends at its next refresh, and ends this one now.
	LogoutEverywhere(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, sessionID string) (*SessionInfo, error)
	Info(ctx context.Context, sessionID string) (*SessionInfo, error)
}
