// Package cache provides the caching layer for rendered booklets.
//
// A Cache stores opaque byte values under string keys with optional
// expiration. Three backends exist: FileCache for CLI runs, RedisCache for
// shared serve deployments, and NullCache to disable caching entirely. Keys
// are derived through a Keyer so every caller hashes the same render inputs
// the same way.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached booklets live unless the caller overrides it.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with TTL support.
type Cache interface {
	// Get retrieves the value for key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from render inputs.
type Keyer interface {
	// BookletKey keys one rendered booklet by skeleton variant, skeleton
	// fingerprint, and the substituted slot values.
	BookletKey(variant, fingerprint string, values map[string]string) string
}

// DefaultKeyer hashes render inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BookletKey generates the cache key for one rendered booklet.
func (k *DefaultKeyer) BookletKey(variant, fingerprint string, values map[string]string) string {
	return hashKey("booklet", variant, fingerprint, values)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
