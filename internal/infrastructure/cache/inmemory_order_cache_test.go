package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorbase/backend/internal/domain/integration"
)

func testOrder(id string) *integration.UpstreamOrder {
	return &integration.UpstreamOrder{
		ID:         id,
		Name:       "#1001",
		CustomerID: "42",
		Email:      "customer@example.com",
		StatusTag:  "paid",
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryOrderCache_SetAndGet(t *testing.T) {
	cache := NewInMemoryOrderCache()
	defer cache.Close()
	ctx := context.Background()

	// Miss before Set
	got, err := cache.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, testOrder("order-1")))

	got, err = cache.Get(ctx, "order-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "order-1", got.ID)
	assert.Equal(t, "#1001", got.Name)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestInMemoryOrderCache_Expiration(t *testing.T) {
	cache := NewInMemoryOrderCache(WithInMemoryTTL(10 * time.Millisecond))
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testOrder("order-1")))

	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryOrderCache_Invalidate(t *testing.T) {
	cache := NewInMemoryOrderCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testOrder("order-1")))
	require.NoError(t, cache.Invalidate(ctx, "order-1"))

	got, err := cache.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryOrderCache_NilAndEmptyOrder(t *testing.T) {
	cache := NewInMemoryOrderCache()
	defer cache.Close()
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, nil))
	assert.NoError(t, cache.Set(ctx, &integration.UpstreamOrder{}))

	got, err := cache.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryOrderCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemoryOrderCache()
	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
