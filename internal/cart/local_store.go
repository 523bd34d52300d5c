package cart

import (
	"context"
	"sync"
)

// LocalStore keeps carts in process memory behind a single RWMutex. The
// default for single-replica deployments; carts do not survive a restart.
type LocalStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewLocalStore() *LocalStore {
	return &LocalStore{carts: make(map[string]*Cart)}
}

func (s *LocalStore) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[sessionID]; ok {
		return c.clone(), nil
	}
	return Cart{}, nil
}

func (s *LocalStore) AddItem(ctx context.Context, sessionID string, item LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	c.AddItem(item)
	return nil
}

func (s *LocalStore) RemoveItem(ctx context.Context, sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		c.RemoveItem(productID)
	}
	return nil
}

func (s *LocalStore) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		c.UpdateQuantity(productID, quantity)
	}
	return nil
}

func (s *LocalStore) EmptyCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
