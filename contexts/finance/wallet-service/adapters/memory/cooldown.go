package memory

import (
	"context"
	"sync"
	"time"
)

// CooldownGate is the in-memory stand-in for the redis cooldown lock.
type CooldownGate struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewCooldownGate() *CooldownGate {
	return &CooldownGate{
		expires: make(map[string]time.Time),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (c *CooldownGate) AcquireCooldown(_ context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if until, exists := c.expires[key]; exists && until.After(now) {
		return false, until.Sub(now), nil
	}
	c.expires[key] = now.Add(window)
	return true, 0, nil
}

func (c *CooldownGate) ReleaseCooldown(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.expires, key)
	return nil
}

// SetNow overrides the clock for tests.
func (c *CooldownGate) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}
