package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySearchCache(t *testing.T) {
	cache := NewMemorySearchCache(time.Minute)
	ctx := context.Background()

	items := []*models.Item{{ID: 1, Name: "Drill"}}

	_, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "drill", items))

	got, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, items, got)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySearchCacheExpiry(t *testing.T) {
	cache := NewMemorySearchCache(-time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "drill", []*models.Item{{ID: 1}}))

	_, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}
