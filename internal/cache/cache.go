package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"yatube/internal/logger"
)

// item wraps cached data with its expiry
type item struct {
	data      interface{}
	expiresAt time.Time
}

// PageCache is a TTL'd LRU cache for rendered page contexts, keyed by route.
// Reads may be stale within the TTL window; Clear drops everything at once so
// the next read recomputes from current data. Construct one and inject it,
// there is no process-wide singleton.
type PageCache struct {
	lruCache *lru.Cache[string, item]
}

func New(size int) *PageCache {
	l, err := lru.New[string, item](size)
	if err != nil {
		logger.Sugar.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &PageCache{lruCache: l}
}

// Set stores data under key for ttl.
func (c *PageCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, item{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached data, or nil when absent or expired.
func (c *PageCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.data
}

// Delete removes a single key.
func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Clear invalidates every cached page unconditionally.
func (c *PageCache) Clear() {
	c.lruCache.Purge()
}
