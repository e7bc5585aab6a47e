package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fills a cache on miss, running at most one fill per key at a time.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
	ttl   time.Duration
}

// NewLoader wraps c. Values computed by the loader are stored with ttl.
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl}
}

// Cache returns the wrapped cache.
func (l *Loader[V]) Cache() Cache[V] {
	return l.cache
}

// GetOrSet returns the cached value for key or computes it with fn.
// Concurrent misses for the same key share one call to fn. Errors from fn
// are returned and nothing is cached. Backend read failures fall through to fn.
func (l *Loader[V]) GetOrSet(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = l.cache.Set(ctx, key, v, l.ttl)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}
