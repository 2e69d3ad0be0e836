package ttlcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
)

// Cache stores entities as JSON snapshots in a Backend. Entries are only ever
// replaced or deleted, never modified in place.
type Cache struct {
	backend Backend
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a Cache over backend. A nil logger falls back to slog.Default.
func New(backend Backend, logger *slog.Logger, metrics *Metrics) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		backend: backend,
		logger:  logger,
		metrics: metrics,
	}
}

// Get decodes the snapshot at key into dst. It reports false with a nil error
// on a miss. Undecodable entries are deleted and reported as misses.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	kind := kindOf(key)
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			c.metrics.recordLookup(kind, resultMiss)
			return false, nil
		}
		c.metrics.recordLookup(kind, resultError)
		return false, wrapUnavailable(err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "Discarding undecodable cache entry",
			attr.ExtractCorrelationID(ctx),
			attr.String("key", key),
			attr.Error(err),
		)
		c.metrics.recordLookup(kind, resultMiss)
		if delErr := c.backend.Delete(ctx, key); delErr != nil {
			return false, wrapUnavailable(delErr)
		}
		return false, nil
	}

	c.metrics.recordLookup(kind, resultHit)
	return true, nil
}

// Set stores value at key, expiring after ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	if err := c.backend.Set(ctx, key, raw, ttl); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// Delete removes key. Absent keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.backend.Delete(ctx, key); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// Close releases the backend.
func (c *Cache) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

func wrapUnavailable(err error) error {
	if errors.Is(err, ErrCacheUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
}
