package kv

import (
	"context"
	"time"
)

// Store is the TTL-bounded key-value capability the conversation store, the
// dedup guard and the read-through caches depend on.
type Store interface {
	// Get returns the value and whether the key exists and has not expired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX writes the value only if the key is absent; reports whether the
	// write happened.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}
