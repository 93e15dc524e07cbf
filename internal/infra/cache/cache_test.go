package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func cachedSession() *entity.CachedSession {
	return &entity.CachedSession{
		SessionID: "sid-1",
		Identity:  entity.Identity{ID: "uid-1", Name: "Maria", Email: "maria@loja.com", Role: entity.RoleAdmin},
		Credential: entity.Credential{
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
			ExpiresAt:    now.Add(time.Hour),
		},
	}
}

func newRedisCache(t *testing.T) (service.CredentialCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisOptions{Addr: mr.Addr()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCredentialCache(client, "test:session:"), mr
}

func TestRedisCredentialCache_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, c.Save(ctx, cachedSession(), time.Hour))
	assert.True(t, mr.Exists("test:session:sid-1"))
	assert.Equal(t, time.Hour, mr.TTL("test:session:sid-1"))

	got, err := c.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.Identity.ID)
	assert.Equal(t, "refresh-token", got.Credential.RefreshToken)
	assert.True(t, got.Credential.ExpiresAt.Equal(now.Add(time.Hour)))

	require.NoError(t, c.Delete(ctx, "sid-1"))
	_, err = c.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, service.ErrCredentialNotCached)

	assert.NoError(t, c.Delete(ctx, "unknown"))
}

func TestRedisCredentialCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, c.Save(ctx, cachedSession(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, service.ErrCredentialNotCached)
}

func TestRedisCredentialCache_NonPositiveTTLDeletes(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, c.Save(ctx, cachedSession(), time.Hour))
	require.NoError(t, c.Save(ctx, cachedSession(), 0))

	assert.False(t, mr.Exists("test:session:sid-1"))
}

func TestRedisCredentialCache_LoadFailsWhenServerDown(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()

	_, err := c.Load(context.Background(), "sid-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCredentialNotCached)
}

func TestMemoryCredentialCache(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(now)
	c := NewMemoryCredentialCache(clock)

	require.NoError(t, c.Save(ctx, cachedSession(), 10*time.Minute))

	got, err := c.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "id-token", got.Credential.IDToken)

	clock.Advance(10 * time.Minute)
	_, err = c.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, service.ErrCredentialNotCached)

	require.NoError(t, c.Save(ctx, cachedSession(), time.Hour))
	require.NoError(t, c.Delete(ctx, "sid-1"))
	_, err = c.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, service.ErrCredentialNotCached)
}
