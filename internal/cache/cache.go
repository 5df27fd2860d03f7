package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

// Cache is a best-effort read-through JSON cache. Failures are logged and
// swallowed: a cache outage must never fail the read path, and a failed
// invalidation must never roll back the mutation that triggered it.
type Cache struct {
	kv     kv.Store
	logger *slog.Logger
}

// New creates a cache over the key-value store.
func New(store kv.Store, logger *slog.Logger) *Cache {
	return &Cache{kv: store, logger: logger}
}

// GetJSON loads and decodes a cached value into dest, reporting a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("cache decode failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

// PutJSON stores the value with a TTL.
func (c *Cache) PutJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.kv.Set(ctx, key, string(raw), ttl); err != nil {
		c.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.kv.Delete(ctx, key); err != nil {
			c.logger.Warn("cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}
