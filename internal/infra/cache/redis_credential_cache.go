// Package cache mirrors session credentials outside the process so sessions survive a restart.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	logger.Info("Connected to Redis", slog.String("addr", opts.Addr), slog.Int("db", opts.DB))

	return client, nil
}

type redisCredentialCache struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisCredentialCache stores each session as a JSON value expiring with its credential.
func NewRedisCredentialCache(client redis.Cmdable, keyPrefix string) service.CredentialCache {
	return &redisCredentialCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (c *redisCredentialCache) key(sessionID string) string {
	return c.keyPrefix + sessionID
}

func (c *redisCredentialCache) Save(ctx context.Context, session *entity.CachedSession, ttl time.Duration) error {
	if ttl <= 0 {
		return c.Delete(ctx, session.SessionID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := c.client.Set(ctx, c.key(session.SessionID), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to cache session")
	}

	return nil
}

func (c *redisCredentialCache) Load(ctx context.Context, sessionID string) (*entity.CachedSession, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCredentialNotCached
		}

		return nil, errors.Wrap(err, "failed to load cached session")
	}

	var session entity.CachedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached session")
	}

	return &session, nil
}

func (c *redisCredentialCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.key(sessionID)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete cached session")
	}

	return nil
}
