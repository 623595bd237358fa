package memory

import (
	"context"
	"sync"
)

// Counter is the in-memory stand-in for the redis unread counter.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

func (c *Counter) IncrCounter(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key]++
	return c.counts[key], nil
}

func (c *Counter) ResetCounter(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.counts, key)
	return nil
}

func (c *Counter) GetCounter(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[key], nil
}
