// Package cache provides a thread-safe load-through cache. Checkers use it
// for values derived lazily from configuration during one run; the
// settings store uses it with a TTL in front of the database.
package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe load-through cache. It tracks a single timestamp
// for the entire cache: once the TTL has passed since the last write, all
// entries are considered stale. A zero TTL never expires.
type Cache[K comparable, V any] struct {
	mu        sync.RWMutex
	data      map[K]V
	timestamp time.Time
	ttl       time.Duration
}

// New creates an empty cache with the given TTL.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]V),
		ttl:  ttl,
	}
}

// Get retrieves a value. ok is false when the key is absent or the cache
// has expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.expiredLocked() {
		var zero V
		return zero, false
	}
	value, ok := c.data[key]
	return value, ok
}

// Set stores a value and refreshes the cache timestamp.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrLoad returns the cached value for key, calling load to produce and
// store it on a miss. load runs under the write lock, so concurrent
// callers for the same key load once.
func (c *Cache[K, V]) GetOrLoad(key K, load func(K) V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.expiredLocked() {
		if v, ok := c.data[key]; ok {
			return v
		}
	} else {
		c.data = make(map[K]V)
	}
	v := load(key)
	c.setLocked(key, v)
	return v
}

// Invalidate clears all cached data.
func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[K]V)
	c.timestamp = time.Time{}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *Cache[K, V]) setLocked(key K, value V) {
	if c.data == nil {
		c.data = make(map[K]V)
	}
	c.data[key] = value
	c.timestamp = time.Now()
}

// expiredLocked MUST be called with at least a read lock held.
func (c *Cache[K, V]) expiredLocked() bool {
	if c.ttl <= 0 {
		return false
	}
	return c.timestamp.IsZero() || time.Since(c.timestamp) >= c.ttl
}
