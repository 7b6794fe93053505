package client

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	expires time.Time // zero: until invalidated
}

type cache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]cacheEntry
}

func newCache() *cache {
	return &cache{now: time.Now, entries: map[string]cacheEntry{}}
}

func (c *cache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *cache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
}

// invalidate drops every key equal to or nested under one of prefixes.
func (c *cache) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, p := range prefixes {
			if key == p || strings.HasPrefix(key, p+"/") || strings.HasPrefix(key, p+"?") {
				delete(c.entries, key)
				break
			}
		}
	}
}

func (c *cache) clear() {
	c.mu.Lock()
	c.entries = map[string]cacheEntry{}
	c.mu.Unlock()
}
