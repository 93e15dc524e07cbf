package cache

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/jonboulle/clockwork"
)

type cachedEntry struct {
	session   entity.CachedSession
	expiresAt time.Time
}

type memoryCredentialCache struct {
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]cachedEntry
}

// NewMemoryCredentialCache keeps sessions in process. They do not survive a restart.
func NewMemoryCredentialCache(clock clockwork.Clock) service.CredentialCache {
	return &memoryCredentialCache{
		clock:   clock,
		entries: make(map[string]cachedEntry),
	}
}

func (c *memoryCredentialCache) Save(_ context.Context, session *entity.CachedSession, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.entries, session.SessionID)

		return nil
	}
	c.entries[session.SessionID] = cachedEntry{session: *session, expiresAt: c.clock.Now().Add(ttl)}

	return nil
}

func (c *memoryCredentialCache) Load(_ context.Context, sessionID string) (*entity.CachedSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[sessionID]
	if !ok {
		return nil, service.ErrCredentialNotCached
	}
	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, sessionID)

		return nil, service.ErrCredentialNotCached
	}
	session := entry.session

	return &session, nil
}

func (c *memoryCredentialCache) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, sessionID)

	return nil
}
