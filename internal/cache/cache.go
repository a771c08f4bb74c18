// Package cache provides small TTL caches that sit in front of expensive
// filesystem and subprocess enumerations. Entries are replaced wholesale on
// miss or expiry; a fresh hit has its TTL extended so rapid keystrokes
// against the same key keep reusing one read.
package cache

import (
	"sync"
	"time"
)

// Common TTLs for the engine's logical caches.
const (
	PathListingTTL = 2 * time.Second
	CommandTTL     = 3 * time.Second
	AccountTTL     = 5 * time.Second
	InterfaceTTL   = 2 * time.Second
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTL is a mutex-guarded cache with a fixed time-to-live per instance.
// Concurrent requests may race on a miss; the last writer wins, which is
// acceptable because TTLs are short and misses are cheap relative to UI
// latency.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now is overridable in tests.
	now func() time.Time
}

// NewTTL creates a cache whose entries stay valid for ttl.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key if it is still fresh. A fresh hit
// has its TTL extended from now.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	e.insertedAt = c.now()
	c.entries[key] = e
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
}

// ExtendTTL resets the entry's age if it is still present.
func (c *TTL[V]) ExtendTTL(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.insertedAt = c.now()
		c.entries[key] = e
	}
}

// GetOrCompute returns the cached value for key, calling compute and
// storing its result on a miss. compute errors are not cached.
func (c *TTL[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}
