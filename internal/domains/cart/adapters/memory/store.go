package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
	"github.com/thinkfashz/Osart/internal/domains/cart/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps carts in process memory, used when Redis is not configured.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewStore() *Store {
	return &Store{carts: map[string]*domain.Cart{}}
}

func (s *Store) Save(_ context.Context, cart *domain.Cart) error {
	if cart == nil || cart.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.SessionID] = clone(cart)
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(cart), nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[sessionID]; !ok {
		return ports.ErrNotFound
	}
	delete(s.carts, sessionID)
	return nil
}

func clone(cart *domain.Cart) *domain.Cart {
	copy := *cart
	copy.Lines = append([]domain.LineItem(nil), cart.Lines...)
	return &copy
}
