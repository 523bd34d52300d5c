package cart

import "context"

// Store keeps one cart per visitor session. Implementations must apply each
// mutation atomically: a concurrent GetCart never observes a cart mid-change.
type Store interface {
	GetCart(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID string, item LineItem) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error
	EmptyCart(ctx context.Context, sessionID string) error
}
