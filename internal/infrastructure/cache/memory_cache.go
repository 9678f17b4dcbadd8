package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache used when Redis is disabled
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry[T]
	now     func() time.Time
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache[T any](ttl time.Duration) *MemoryCache[T] {
	return &MemoryCache[T]{
		ttl:     ttl,
		entries: make(map[string]memoryEntry[T]),
		now:     time.Now,
	}
}

// Get returns a copy of the value cached for key
func (c *MemoryCache[T]) Get(_ context.Context, key string) (*T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	value := entry.value
	return &value, true
}

// Set stores a copy of value under key
func (c *MemoryCache[T]) Set(_ context.Context, key string, value *T) {
	if value == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry[T]{value: *value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops key from the cache
func (c *MemoryCache[T]) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
