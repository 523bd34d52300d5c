// Package cart holds visitor shopping carts. A cart keeps at most one line
// item per product; re-adding a product raises its quantity instead of
// appending a duplicate. Totals are always derived from the current items,
// never cached.
package cart

import "github.com/shopspring/decimal"

// LineItem is one product entry with an aggregated quantity.
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered collection of line items, insertion order preserved.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem appends item with quantity 1, or bumps the quantity of an existing
// entry with the same product id. The item's Quantity field is ignored.
func (c *Cart) AddItem(item LineItem) {
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the entry with the given product id. Removing an absent
// id is a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing entry. A quantity of zero
// or less removes the entry: the storefront's minus button on a quantity-1
// item means "take it out of my order".
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems is the sum of quantities across all line items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of line subtotals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// clone returns a deep copy so stored carts never share backing arrays with
// callers.
func (c *Cart) clone() Cart {
	cp := Cart{}
	if len(c.Items) > 0 {
		cp.Items = make([]LineItem, len(c.Items))
		copy(cp.Items, c.Items)
	}
	return cp
}
