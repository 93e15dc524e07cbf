package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims of a service-issued session token.
type Claims struct {
	SessionID string   `json:"sid"`
	UserID    string   `json:"uid"`
	Roles     []string `json:"roles,omitempty"`
	Type      string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the session tokens handed to browser clients.
// The token only names the server-side session; the auth provider credential never leaves the service.
type TokenService interface {
	// GenerateSessionToken creates a signed token for a session that expires after ttl.
	GenerateSessionToken(sessionID, userID string, roles []string, ttl time.Duration) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
