package cache

import (
	"context"
	"sync"
	"time"

	"dropos/internal/domain"
)

type MetricsCache interface {
	Get(ctx context.Context, key string) (*domain.Metrics, bool, error)
	Set(ctx context.Context, key string, value *domain.Metrics, ttl time.Duration) error
}

type NoopMetricsCache struct{}

func (NoopMetricsCache) Get(_ context.Context, _ string) (*domain.Metrics, bool, error) {
	return nil, false, nil
}

func (NoopMetricsCache) Set(_ context.Context, _ string, _ *domain.Metrics, _ time.Duration) error {
	return nil
}

// MemoryMetricsCache is an in-process cache for single-node deployments.
type MemoryMetricsCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     domain.Metrics
	expiresAt time.Time
}

func NewMemoryMetricsCache() *MemoryMetricsCache {
	return &MemoryMetricsCache{now: time.Now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryMetricsCache) Get(_ context.Context, key string) (*domain.Metrics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	value := entry.value
	return &value, true, nil
}

func (c *MemoryMetricsCache) Set(_ context.Context, key string, value *domain.Metrics, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: *value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryMetricsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
