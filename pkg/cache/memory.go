package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	expires time.Time
	value   V
	key     string
}

// Memory is a process-local LRU cache with per-entry expiry.
type Memory[V any] struct {
	index  map[string]*list.Element
	lru    *list.List
	stop   chan struct{}
	cfg    memoryConfig
	stats  Stats
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory cache.
//
//	html := cache.NewMemory[string](cache.WithMaxEntries(1024))
//	defer html.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{
		now:             time.Now,
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		index: make(map[string]*list.Element),
		lru:   list.New(),
		stop:  make(chan struct{}),
		cfg:   cfg,
	}
	if cfg.cleanupInterval > 0 {
		go m.sweepLoop()
	}
	return m
}

func (m *Memory[V]) expired(e *memoryEntry[V]) bool {
	return !e.expires.IsZero() && !m.cfg.now().Before(e.expires)
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.index[key]
	if !ok {
		m.stats.Misses++
		return zero, ErrNotFound
	}
	e := el.Value.(*memoryEntry[V])
	if m.expired(e) {
		m.drop(el)
		m.stats.Misses++
		return zero, ErrNotFound
	}
	m.lru.MoveToFront(el)
	m.stats.Hits++
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.cfg.defaultTTL
	}
	var expires time.Time
	if ttl > 0 {
		expires = m.cfg.now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		e := el.Value.(*memoryEntry[V])
		e.value, e.expires = value, expires
		m.lru.MoveToFront(el)
		return nil
	}

	for m.cfg.maxEntries > 0 && len(m.index) >= m.cfg.maxEntries {
		m.drop(m.lru.Back())
		m.stats.Evictions++
	}
	m.index[key] = m.lru.PushFront(&memoryEntry[V]{key: key, value: value, expires: expires})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.index[key]; ok {
		m.drop(el)
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.index)
	m.lru.Init()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

func (m *Memory[V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Entries = len(m.index)
	return s
}

// Close stops the sweeper. Further writes return ErrClosed. Safe to call twice.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweepLoop() {
	t := time.NewTicker(m.cfg.cleanupInterval)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for el := m.lru.Back(); el != nil; {
		prev := el.Prev()
		if m.expired(el.Value.(*memoryEntry[V])) {
			m.drop(el)
		}
		el = prev
	}
}

// drop must be called with mu held.
func (m *Memory[V]) drop(el *list.Element) {
	m.lru.Remove(el)
	delete(m.index, el.Value.(*memoryEntry[V]).key)
}

var (
	_ Cache[any]    = (*Memory[any])(nil)
	_ StatsReporter = (*Memory[any])(nil)
)
