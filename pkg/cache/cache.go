// Package cache stores computed layouts and rendered exports between CLI
// runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for teams laying out the same
//     documents
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] from a document hash and the options that
// influence the cached value, so any change to either yields a new key.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per cached value type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Pruner is implemented by caches that must remove expired entries
// themselves. Backends with native expiry, like Redis, do not need it.
type Pruner interface {
	Prune(ctx context.Context) (removed int, err error)
}
