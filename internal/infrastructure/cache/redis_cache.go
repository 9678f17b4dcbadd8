package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is a JSON-encoded cache of T values in Redis. Cache failures are
// logged and reported as misses so callers fall through to the database.
type RedisCache[T any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a cache whose keys live under prefix
func NewRedisCache[T any](client redis.Cmdable, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache[T] {
	return &RedisCache[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get returns the cached value for key
func (c *RedisCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", c.prefix+key), zap.Error(err))
		}
		return nil, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.Warn("cache entry undecodable, dropping", zap.String("key", c.prefix+key), zap.Error(err))
		c.Invalidate(ctx, key)
		return nil, false
	}
	return &value, true
}

// Set stores value under key for the cache TTL
func (c *RedisCache[T]) Set(ctx context.Context, key string, value *T) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", c.prefix+key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", c.prefix+key), zap.Error(err))
	}
}

// Invalidate drops key from the cache
func (c *RedisCache[T]) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("key", c.prefix+key), zap.Error(err))
	}
}
