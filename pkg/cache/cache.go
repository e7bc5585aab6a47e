package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a generic key-value cache.
//
// TTL passed to Set: positive expires after the duration, zero uses the
// backend default, negative never expires.
type Cache[V any] interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Stats is a point-in-time view of cache effectiveness.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// StatsReporter is implemented by backends that track hit rates.
type StatsReporter interface {
	Stats() Stats
}

// Marshaler converts values for byte-oriented backends such as Redis.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON returns a Marshaler using encoding/json.
func JSON[V any]() Marshaler[V] {
	return jsonMarshaler[V]{}
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// String stores strings as raw bytes. Rendered HTML is cached this way.
type String struct{}

func (String) Marshal(v string) ([]byte, error)     { return []byte(v), nil }
func (String) Unmarshal(data []byte) (string, error) { return string(data), nil }
