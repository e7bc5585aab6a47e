package cache

import "time"

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	now             func() time.Time
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// WithDefaultTTL sets the expiry applied when Set is called with a zero TTL.
// A negative value keeps such entries forever. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the background sweep; expired entries are then dropped on read.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.cleanupInterval = d }
}

// WithMaxEntries bounds the cache; the least recently used entry is evicted first.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) { c.maxEntries = n }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}
