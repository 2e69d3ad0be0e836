// Package ttlcache holds serialized entity snapshots with per-entry expiry
// and the read-through/write-invalidate helpers the application services use
// to keep those snapshots coherent with Postgres.
package ttlcache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMiss is returned by a Backend when the key is absent or expired.
	ErrMiss = errors.New("cache miss")

	// ErrCacheUnavailable wraps backend connection and timeout failures.
	// It is absorbed by the coherence helpers and never reaches callers.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// Backend is the raw key/value store behind a Cache.
type Backend interface {
	// Get returns the stored bytes, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value with an absolute expiry of now + ttl, overwriting any entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
