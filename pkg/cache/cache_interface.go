package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Allows swapping implementations (Redis, in-memory) and mocking in tests.
type Cache interface {
	// Get reads data from cache and unmarshals into dest.
	// Returns: (found bool, error)
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores data in cache with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from cache
	Delete(ctx context.Context, keys ...string) error

	// Exists checks whether a key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Expire resets the TTL on a key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping verifies the connection
	Ping(ctx context.Context) error
}
