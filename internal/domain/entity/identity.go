// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// DefaultIdentityName is shown when the auth provider knows neither a display name nor an email.
const DefaultIdentityName = "Usuário"

// Identity is the authenticated principal. It owns catalog, category and store-profile documents
// and is immutable for the lifetime of a session.
type Identity struct {
	ID    string `json:"id"`    // Auth provider user id, also the owner key of every document.
	Name  string `json:"name"`  // Display name, falling back to the email local part.
	Email string `json:"email"` // Sign-in email.
	Role  Role   `json:"role"`  // Always RoleAdmin for signed-in merchants.
}

// NewIdentity maps an auth provider account onto an Identity.
func NewIdentity(id, email, displayName string) *Identity {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		name = DefaultIdentityName
	}

	return &Identity{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  RoleAdmin,
	}
}

// Roles returns the roles carried in service-issued session tokens.
func (i *Identity) Roles() Roles {
	return Roles{i.Role}
}

// Credential is the auth provider's bearer token with its expiry.
type Credential struct {
	IDToken      string    `json:"idToken"`      // Short-lived bearer token attached to backend calls.
	RefreshToken string    `json:"refreshToken"` // Long-lived token used to mint a new IDToken.
	ExpiresAt    time.Time `json:"expiresAt"`    // Instant after which IDToken is rejected.
}

// ExpiresWithin reports whether the credential expires less than d after now.
func (c *Credential) ExpiresWithin(now time.Time, d time.Duration) bool {
	return c.ExpiresAt.Sub(now) < d
}

// CachedSession is what the credential cache persists so a session survives a process restart.
type CachedSession struct {
	SessionID  string     `json:"sessionId"`
	Identity   Identity   `json:"identity"`
	Credential Credential `json:"credential"`
}
