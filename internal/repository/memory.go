package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/models"
)

// MemorySearchCache is the in-process fallback for the search cache.
type MemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	items     []*models.Item
	expiresAt time.Time
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemorySearchCache) Get(ctx context.Context, query string) ([]*models.Item, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[query]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, query)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, query string, items []*models.Item) error {
	c.mu.Lock()
	c.entries[query] = memoryEntry{items: items, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemorySearchCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
