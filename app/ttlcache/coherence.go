package ttlcache

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
)

// LoadFunc reads or writes one entity in the store.
type LoadFunc[T any] func(ctx context.Context) (*T, error)

// ReadThrough returns the cached snapshot at key, or loads it from the store
// and caches it for ttl. Store errors are returned untouched and never cached.
// A nil cache or a cache failure falls back to the store alone.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load LoadFunc[T]) (*T, error) {
	if c != nil {
		cached := new(T)
		hit, err := c.Get(ctx, key, cached)
		switch {
		case err != nil:
			c.degraded(ctx, "get", key, err)
		case hit:
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.populate(ctx, key, value, ttl)
	return value, nil
}

// WriteThrough deletes key, runs write against the store, then caches the
// result. When write fails the entry stays absent so the next read goes to
// the store. When caching the result fails the delete is retried, so a
// snapshot that survived the first delete cannot outlive the write.
func WriteThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, write LoadFunc[T]) (*T, error) {
	c.invalidate(ctx, key)

	value, err := write(ctx)
	if err != nil {
		return nil, err
	}
	if !c.populate(ctx, key, value, ttl) {
		c.invalidate(ctx, key)
	}
	return value, nil
}

// CreateThrough runs create against the store and caches the result. Errors,
// including conflicts, leave the cache untouched.
func CreateThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, create LoadFunc[T]) (*T, error) {
	value, err := create(ctx)
	if err != nil {
		return nil, err
	}
	c.populate(ctx, key, value, ttl)
	return value, nil
}

// Invalidate deletes key, absorbing backend failures.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.invalidate(ctx, key)
}

func (c *Cache) invalidate(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, key); err != nil {
		c.degraded(ctx, "delete", key, err)
	}
}

// populate reports whether the snapshot was stored.
func (c *Cache) populate(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if c == nil || value == nil {
		return false
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		c.degraded(ctx, "set", key, err)
		return false
	}
	return true
}

func (c *Cache) degraded(ctx context.Context, op, key string, err error) {
	c.metrics.recordFailure(kindOf(key), op)
	c.logger.WarnContext(ctx, "Cache unavailable, continuing store-only",
		attr.ExtractCorrelationID(ctx),
		attr.String("op", op),
		attr.String("key", key),
		attr.Error(err),
	)
}
