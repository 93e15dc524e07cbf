package service

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrCredentialNotCached is returned by Load for unknown or expired sessions.
var ErrCredentialNotCached = errors.New("credential not cached")

// CredentialCache mirrors session credentials so they survive a process restart.
type CredentialCache interface {
	// Save stores the session until ttl elapses.
	Save(ctx context.Context, session *entity.CachedSession, ttl time.Duration) error

	// Load returns the cached session, or ErrCredentialNotCached.
	Load(ctx context.Context, sessionID string) (*entity.CachedSession, error)

	// Delete forgets the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
