package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

func setupTestCache(t *testing.T) (*LeadCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	return NewLeadCache(rdb, 5*time.Minute), mr
}

func cachedLead() *entity.Lead {
	return &entity.Lead{
		ID:        "lead-1",
		FirstName: "Maria",
		LastName:  "Souza",
		Email:     "maria@example.com",
		Summary:   "warm lead",
	}
}

func TestLeadCacheRoundTrip(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, cachedLead()))

	got, err := cache.Get(ctx, "lead-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "maria@example.com", got.Email)
	assert.Equal(t, "warm lead", got.Summary)
}

func TestLeadCacheMiss(t *testing.T) {
	cache, _ := setupTestCache(t)

	got, err := cache.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLeadCacheTTLExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, cachedLead()))

	// Dentro da janela ainda responde
	got, err := cache.Get(ctx, "lead-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	mr.FastForward(5*time.Minute + time.Second)

	got, err = cache.Get(ctx, "lead-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLeadCacheDel(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, cachedLead()))
	require.NoError(t, cache.Del(ctx, "lead-1"))

	got, err := cache.Get(ctx, "lead-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLeadCacheUsesNamespacedKey(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.Set(context.Background(), cachedLead()))
	assert.True(t, mr.Exists("lead:lead-1"))
}
