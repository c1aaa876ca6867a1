package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// recoveryInterval is how long the failover waits before probing the
// primary again.
const recoveryInterval = time.Minute

// FailoverSearchCache serves from the primary cache and falls back to the
// secondary when the primary errors, probing the primary periodically.
type FailoverSearchCache struct {
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	downSince atomic.Int64
}

func NewFailoverSearchCache(primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverSearchCache) Get(ctx context.Context, query string) ([]*models.Item, bool, error) {
	if c.primaryUsable() {
		items, ok, err := c.primary.Get(ctx, query)
		if err == nil {
			return items, ok, nil
		}
		c.markDown(err)
	}
	return c.fallback.Get(ctx, query)
}

func (c *FailoverSearchCache) Set(ctx context.Context, query string, items []*models.Item) error {
	if c.primaryUsable() {
		if err := c.primary.Set(ctx, query, items); err == nil {
			return nil
		} else {
			c.markDown(err)
		}
	}
	return c.fallback.Set(ctx, query, items)
}

func (c *FailoverSearchCache) Invalidate(ctx context.Context) error {
	// Both sides are invalidated so a recovered primary cannot serve
	// results staled by writes that happened while it was down.
	var primaryErr error
	if c.primaryUsable() {
		if primaryErr = c.primary.Invalidate(ctx); primaryErr != nil {
			c.markDown(primaryErr)
		}
	}
	return c.fallback.Invalidate(ctx)
}

func (c *FailoverSearchCache) primaryUsable() bool {
	if !c.isDown.Load() {
		return true
	}
	if time.Since(time.Unix(c.downSince.Load(), 0)) > recoveryInterval {
		c.isDown.Store(false)
		return true
	}
	return false
}

func (c *FailoverSearchCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary search cache failed, falling back to memory")
	c.isDown.Store(true)
	c.downSince.Store(time.Now().Unix())
}
