// Package cache provides a small in-process TTL cache.
//
// It backs the market-data provider so that a ticker is fetched from the
// upstream API at most once per expiry window within a single process.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value    interface{}
	expireAt time.Time
}

func (it *item) expired(now time.Time) bool {
	return now.After(it.expireAt)
}

// TTLCache is a concurrency-safe map with per-entry expiry.
type TTLCache struct {
	mu   sync.RWMutex
	data map[string]*item
}

// NewTTL creates an empty TTL cache.
func NewTTL() *TTLCache {
	return &TTLCache{
		data: make(map[string]*item),
	}
}

// Get returns the value for key if present and not expired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	it, exists := c.data[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if it.expired(time.Now()) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

// Set stores value under key for the given TTL.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &item{
		value:    value,
		expireAt: time.Now().Add(ttl),
	}
}

// Delete removes key from the cache.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Prune drops all expired entries and returns how many were removed.
func (c *TTLCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, it := range c.data {
		if it.expired(now) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including any not yet pruned.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
