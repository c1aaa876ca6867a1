package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSearchCache(client, time.Minute), mr
}

func TestRedisSearchCache(t *testing.T) {
	cache, _ := setupRedisCache(t)
	ctx := context.Background()

	items := []*models.Item{{ID: 1, Name: "Drill", Available: true}}

	_, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "drill", items))

	got, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Drill", got[0].Name)
}

func TestRedisSearchCacheInvalidate(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	items := []*models.Item{{ID: 1, Name: "Drill"}}
	require.NoError(t, cache.Set(ctx, "drill", items))
	require.NoError(t, cache.Set(ctx, "saw", items))
	// unrelated keys survive the invalidation
	mr.Set("session:42", "untouched")

	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = cache.Get(ctx, "saw")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("session:42"))
}

func TestRedisSearchCacheTTL(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "drill", []*models.Item{{ID: 1}}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "drill")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	require.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}
