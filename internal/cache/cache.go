// Package cache provides a read-view cache with explicit invalidation.
//
// The engine itself computes everything deterministically from the store;
// cached views exist purely so that repeated month-summary reads do not
// recompute the aggregation. Every write path must invalidate the views it
// affects, there is no time-based expiry.
package cache

import "sync"

// Cache is a keyed cache for computed read views.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New returns an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{
		items: make(map[string]T),
	}
}

// Get retrieves a cached view.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	return item, ok
}

// Set stores a computed view.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

// Invalidate removes a single view.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// InvalidateAll removes all views. Writes that affect an unknown number
// of months (e.g. deleting an account) use this.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]T)
}

// Size returns the current number of cached views.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
