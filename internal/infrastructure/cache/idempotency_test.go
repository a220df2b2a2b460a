package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_FirstPutWins(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()

	ok, err := store.Put(ctx, "key-1", "JUDN-AAA-00001", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Put(ctx, "key-1", "JUDN-BBB-00002", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	number, found, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "JUDN-AAA-00001", number)
}

func TestInMemoryIdempotencyStore_ExpiryAndRelease(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()

	ok, err := store.Put(ctx, "expired", "JUDN-AAA-00001", -time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	_, found, err := store.Get(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = store.Put(ctx, "released", "JUDN-AAA-00001", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, store.Release(ctx, "released"))

	ok, err = store.Put(ctx, "released", "JUDN-BBB-00002", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_FulfillOverwritesClaim(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()

	ok, err := store.Put(ctx, "claimed", "PENDING", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Fulfill(ctx, "claimed", "JUDN-AAA-00001", time.Minute))

	number, found, err := store.Get(ctx, "claimed")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "JUDN-AAA-00001", number)
}

func TestInMemoryCartStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCartStore()

	_, found, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, found)

	cart := &Cart{
		Key: "session-1",
		Lines: []CartLine{
			{Name: "Linen Shirt", UnitPrice: decimal.NewFromInt(1450), Quantity: 2, Size: "M"},
		},
	}
	require.NoError(t, store.Put(ctx, cart, time.Hour))

	saved, found, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, saved.Lines, 1)
	assert.Equal(t, "Linen Shirt", saved.Lines[0].Name)
	assert.False(t, saved.UpdatedAt.IsZero())

	// the stored copy is isolated from later mutation of the returned cart
	saved.Lines[0].Quantity = 99
	again, _, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity)

	require.NoError(t, store.Delete(ctx, "session-1"))
	_, found, err = store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryCartStore_TTL(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCartStore()

	require.NoError(t, store.Put(ctx, &Cart{Key: "stale"}, -time.Second))
	_, found, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, found)
}
