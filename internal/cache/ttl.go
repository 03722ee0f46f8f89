package cache

import (
	"sync"
	"time"
)

// Default freshness windows per resource type
const (
	TrendsTTL      = 2 * time.Minute
	PredictionsTTL = 5 * time.Minute
	InjuriesTTL    = 10 * time.Minute
	NewsTTL        = 15 * time.Minute
)

type entry[V any] struct {
	value    V
	cachedAt time.Time
	ttl      time.Duration
}

// TTL is a keyed in-process cache with per-entry expiration.
// Expired entries are evicted lazily on read; there is no sweeper.
// A cache is an optimization, never a source of truth: reads cannot fail,
// they only miss.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

// NewTTL creates an empty cache
func NewTTL[V any]() *TTL[V] {
	return &TTL[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// NewTTLWithClock creates a cache with an injected clock (tests)
func NewTTLWithClock[V any](now func() time.Time) *TTL[V] {
	c := NewTTL[V]()
	c.now = now
	return c
}

// Get returns the cached value for key, or the zero value and false when
// the key is absent or its entry has expired
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if c.now().Sub(e.cachedAt) > e.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores value under key for ttl. Last writer wins.
func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:    value,
		cachedAt: c.now(),
		ttl:      ttl,
	}
}

// Delete removes key if present
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, including not-yet-evicted
// expired ones
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
