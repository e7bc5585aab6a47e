package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// Redis is a cache shared between folio instances through a Redis server.
type Redis[V any] struct {
	client redis.UniversalClient
	codec  Marshaler[V]
	cfg    redisConfig
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedis creates a Redis-backed cache. A nil codec selects JSON.
// The client lifecycle stays with the caller.
func NewRedis[V any](client redis.UniversalClient, codec Marshaler[V], opts ...RedisOption) *Redis[V] {
	cfg := redisConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	if codec == nil {
		codec = JSON[V]()
	}
	return &Redis[V]{client: client, codec: codec, cfg: cfg}
}

func (r *Redis[V]) key(k string) string {
	if r.cfg.namespace == "" {
		return k
	}
	return r.cfg.namespace + ":" + k
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.misses.Add(1)
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("cache: redis get: %w", err)
	}
	v, err := r.codec.Unmarshal(data)
	if err != nil {
		return zero, err
	}
	r.hits.Add(1)
	return v, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Marshal(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.cfg.defaultTTL
	}
	// go-redis treats 0 as "keep forever".
	if err := r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear removes the namespace with SCAN, or flushes the database when no namespace is set.
func (r *Redis[V]) Clear(ctx context.Context) error {
	if r.cfg.namespace == "" {
		return r.client.FlushDB(ctx).Err()
	}

	iter := r.client.Scan(ctx, 0, r.cfg.namespace+":*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close does nothing; see pkg/redis.Shutdown.
func (r *Redis[V]) Close() error { return nil }

// Stats reports hits and misses seen by this process. Entries is not tracked.
func (r *Redis[V]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}

var (
	_ Cache[any]    = (*Redis[any])(nil)
	_ StatsReporter = (*Redis[any])(nil)
)
