package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreKeepsSessionsApart(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()

	require.NoError(t, store.AddItem(ctx, "alice", LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")}))
	require.NoError(t, store.AddItem(ctx, "bob", LineItem{ID: "2", Name: "Suco", UnitPrice: price("8.00")}))

	alice, err := store.GetCart(ctx, "alice")
	require.NoError(t, err)
	bob, err := store.GetCart(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, 1, alice.TotalItems())
	assert.Equal(t, "1", alice.Items[0].ID)
	assert.Equal(t, "2", bob.Items[0].ID)
}

func TestLocalStoreUnknownSessionIsEmptyCart(t *testing.T) {
	store := NewLocalStore()

	c, err := store.GetCart(context.Background(), "nobody")

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestLocalStoreEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()
	require.NoError(t, store.AddItem(ctx, "s", LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")}))

	require.NoError(t, store.EmptyCart(ctx, "s"))

	c, err := store.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestLocalStoreUpdateQuantityRemovalPolicy(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()
	require.NoError(t, store.AddItem(ctx, "s", LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")}))

	require.NoError(t, store.UpdateQuantity(ctx, "s", "7", 0))

	c, err := store.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestLocalStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()
	require.NoError(t, store.AddItem(ctx, "s", LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")}))

	c, err := store.GetCart(ctx, "s")
	require.NoError(t, err)
	c.Items[0].Quantity = 99

	again, err := store.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestLocalStoreConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()
	item := LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddItem(ctx, "s", item)
		}()
	}
	wg.Wait()

	c, err := store.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 50, c.Items[0].Quantity)
	assert.True(t, c.TotalPrice().Equal(price("1500.00")))
}
