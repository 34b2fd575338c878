// Package cache provides a small in-process TTL cache.
package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and its absolute expiration timestamp.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a goroutine-safe map with per-entry expiry and an upper bound
// on the number of entries. Expired entries are dropped lazily on read and
// in bulk by Purge.
type TTLCache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]entry[V]
	capacity int
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// New creates a cache holding at most capacity entries. A non-positive
// capacity means unbounded.
func New[K comparable, V any](capacity int) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		items:    make(map[K]entry[V]),
		capacity: capacity,
	}
}

// Get returns the value for key if it is present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if !now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Put may have refreshed it.
		if cur, ok := c.items[key]; ok && !now().Before(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Put stores value until ttl elapses. Non-positive ttls are ignored.
// When the cache is full, expired entries are purged first; if it is still
// full, the entry closest to expiry is evicted.
func (c *TTLCache[K, V]) Put(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	if _, exists := c.items[key]; !exists && c.capacity > 0 && len(c.items) >= c.capacity {
		c.purgeLocked(ts)
		if len(c.items) >= c.capacity {
			c.evictSoonestLocked()
		}
	}
	c.items[key] = entry[V]{value: value, expiresAt: ts.Add(ttl)}
}

// Len returns the number of live entries.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ts := now()
	count := 0
	for _, e := range c.items {
		if ts.Before(e.expiresAt) {
			count++
		}
	}
	return count
}

// Purge removes every expired entry.
func (c *TTLCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked(now())
}

func (c *TTLCache[K, V]) purgeLocked(ts time.Time) {
	for k, e := range c.items {
		if !ts.Before(e.expiresAt) {
			delete(c.items, k)
		}
	}
}

func (c *TTLCache[K, V]) evictSoonestLocked() {
	var (
		victim  K
		soonest time.Time
		found   bool
	)
	for k, e := range c.items {
		if !found || e.expiresAt.Before(soonest) {
			victim, soonest, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.items, victim)
	}
}
