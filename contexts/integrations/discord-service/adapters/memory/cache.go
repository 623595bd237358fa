package memory

import (
	"context"
	"sync"
	"time"
)

// RoleCache is the in-memory stand-in for the redis role-list cache.
type RoleCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	payload []byte
	expires time.Time
}

func NewRoleCache() *RoleCache {
	return &RoleCache{
		entries: make(map[string]cacheEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (c *RoleCache) SetJSON(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	c.entries[key] = cacheEntry{payload: stored, expires: c.now().Add(ttl)}
	return nil
}

func (c *RoleCache) GetJSON(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || entry.expires.Before(c.now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// SetNow overrides the clock for tests.
func (c *RoleCache) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}
