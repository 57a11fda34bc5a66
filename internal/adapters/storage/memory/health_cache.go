package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"nutriplan-dashboard/internal/ports/health"
)

type healthCache struct {
	mu    sync.RWMutex
	until map[string]time.Time
	now   func() time.Time
}

func NewHealthCache() health.Cache {
	return newHealthCache(time.Now)
}

func newHealthCache(now func() time.Time) *healthCache {
	return &healthCache{
		until: make(map[string]time.Time),
		now:   now,
	}
}

func (c *healthCache) IsDown(ctx context.Context, service string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	until, ok := c.until[key(service)]
	if !ok {
		return false, nil
	}
	return c.now().Before(until), nil
}

func (c *healthCache) MarkDown(ctx context.Context, service string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.until[key(service)] = c.now().Add(ttl)
	return nil
}

func (c *healthCache) MarkUp(ctx context.Context, service string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.until, key(service))
	return nil
}

func key(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}
