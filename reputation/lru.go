// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reputation

import (
	"container/list"
	"sync"
)

// lruEntry holds a key-value pair for the LRU cache.
type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// lruCache is a thread-safe, bounded LRU cache with O(1) operations.
// It uses a doubly-linked list for recency ordering and a hash map for fast
// lookups. When the cache reaches capacity, the least recently used entry is
// evicted on Put.
//
// Note: Get() mutates the list (moves the accessed node to front), so a
// plain Mutex is used instead of RWMutex. This is the standard LRU tradeoff.
type lruCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	list     *list.List
	items    map[K]*list.Element
}

// newLRUCache creates a new bounded LRU cache with the specified capacity.
// The capacity must be greater than 0.
func newLRUCache[K comparable, V any](capacity int) *lruCache[K, V] {
	if capacity <= 0 {
		panic("lruCache capacity must be > 0")
	}
	return &lruCache[K, V]{
		capacity: capacity,
		list:     list.New(),
		items:    make(map[K]*list.Element, capacity),
	}
}

// Get retrieves a value from the cache by key. If the key exists, the entry
// is moved to the front (most recently used) and the value is returned with
// ok=true.
func (c *lruCache[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}

	c.list.MoveToFront(node)
	return node.Value.(*lruEntry[K, V]).value, true
}

// Put adds or updates a key-value pair in the cache. If the cache is at
// capacity and the key is new, the least recently used entry is evicted.
func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, exists := c.items[key]; exists {
		node.Value.(*lruEntry[K, V]).value = value
		c.list.MoveToFront(node)
		return
	}

	if len(c.items) >= c.capacity {
		back := c.list.Back()
		if back != nil {
			delete(c.items, back.Value.(*lruEntry[K, V]).key)
			c.list.Remove(back)
		}
	}

	node := c.list.PushFront(&lruEntry[K, V]{key: key, value: value})
	c.items[key] = node
}

// Len returns the current number of entries in the cache.
func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
