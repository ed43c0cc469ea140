package ticker

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. A background goroutine evicts expired
// entries until Close is called. A nil *Cache never hits.
type Cache[V any] struct {
	mu    sync.RWMutex
	store map[string]cacheEntry[V]
	ttl   time.Duration
	now   func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewCache returns a cache holding entries for ttl. A non-positive ttl
// disables caching and returns nil.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		return nil
	}
	c := &Cache[V]{
		store: make(map[string]cacheEntry[V]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a cached value if available and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || c.now().After(entry.expiresAt) {
		return zero, false
	}
	return entry.value, true
}

// Set stores a value in the cache.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache[V]) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}
