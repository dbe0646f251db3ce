// Package cache provides byte-level caching for computed layouts.
//
// A layout run is deterministic in its graph and configuration, so results
// are cached under a content hash of both (see [Key]). Three backends are
// provided:
//
//   - [FileCache]: directory of JSON entries for CLI usage
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: no-op, for tests and --no-cache
//
// All backends store opaque bytes with a TTL; callers serialize their own
// values.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached layouts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration; a
	// negative TTL expires the entry immediately.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
