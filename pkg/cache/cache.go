// Package cache stores solved covers so repeated runs over the same instance
// skip the search.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis server, entries expire natively
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// # Keys
//
// Entries are keyed by a [Keyer] from the SHA-256 of an instance's canonical
// form plus the solver options that can change which cover is returned. Keys
// never depend on set order or on element order within a set, so permuted
// instances share an entry. Any cached cover is a minimum cover of every
// instance mapping to its key.
//
// # Errors
//
// Network backends wrap transient failures with [Retryable] and retry them
// through [RetryWithBackoff]. Callers treat cache errors as misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// DefaultTTL is how long solved covers are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour
