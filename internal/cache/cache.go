// Package cache provides an optional Redis-backed cache of finished
// research responses. Cache trouble is logged and ignored; the pipeline
// works identically without it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores serialized research results keyed by
// (query, category, depth). A nil *Cache is a disabled cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr returns a nil (disabled)
// cache.
func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl:    ttl,
	}
}

// Key derives the cache key for a research request.
func Key(query, category, depth string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query)) + "\x00" + category + "\x00" + depth))
	return "research:" + hex.EncodeToString(sum[:16])
}

// Get unmarshals a cached value into out, reporting whether it was found.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	blob, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(blob, out); err != nil {
		zap.L().Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put stores a value under key with the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	blob, err := json.Marshal(val)
	if err != nil {
		zap.L().Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, blob, c.ttl).Err(); err != nil {
		zap.L().Warn("cache put failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
