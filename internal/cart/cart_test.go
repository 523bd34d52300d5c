package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddItemSameProductIncrements(t *testing.T) {
	c := Cart{}
	item := LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")}

	c.AddItem(item)
	c.AddItem(item)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})
	c.AddItem(LineItem{ID: "2", Name: "Suco", UnitPrice: price("8.00")})
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})

	require.Len(t, c.Items, 2)
	assert.Equal(t, "1", c.Items[0].ID)
	assert.Equal(t, "2", c.Items[1].ID)
}

func TestTotalPriceTracksEveryMutation(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})
	c.AddItem(LineItem{ID: "2", Name: "Suco", UnitPrice: price("8.50")})
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})

	assert.True(t, c.TotalPrice().Equal(price("68.50")), "got %s", c.TotalPrice())

	c.RemoveItem("2")
	assert.True(t, c.TotalPrice().Equal(price("60.00")), "got %s", c.TotalPrice())

	c.UpdateQuantity("1", 5)
	assert.True(t, c.TotalPrice().Equal(price("150.00")), "got %s", c.TotalPrice())
}

func TestUpdateQuantityToZeroRemoves(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")})

	c.UpdateQuantity("7", 0)

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems())
}

func TestDecrementFromTwoKeepsItem(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")})
	c.AddItem(LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")})

	c.UpdateQuantity("7", 1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.True(t, c.TotalPrice().Equal(price("25.00")))
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})

	c.RemoveItem("999")

	assert.Len(t, c.Items, 1)
}

func TestClearEmptiesEverything(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "1", Name: "Pizza", UnitPrice: price("30.00")})
	c.AddItem(LineItem{ID: "2", Name: "Suco", UnitPrice: price("8.00")})

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestBurgerScenario(t *testing.T) {
	c := Cart{}
	c.AddItem(LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")})
	c.AddItem(LineItem{ID: "7", Name: "Burger", UnitPrice: price("25.00")})

	c.UpdateQuantity("7", 1)
	assert.Equal(t, 1, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(price("25.00")))

	c.RemoveItem("7")
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}
