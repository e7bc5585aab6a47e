package cache

import "time"

// RedisOption configures a Redis cache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	namespace  string
	defaultTTL time.Duration
}

// WithNamespace prefixes every key with "{ns}:". Clear only touches the namespace.
func WithNamespace(ns string) RedisOption {
	return func(c *redisConfig) { c.namespace = ns }
}

// WithRedisDefaultTTL sets the expiry applied when Set is called with a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) { c.defaultTTL = d }
}
