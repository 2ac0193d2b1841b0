package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps in-flight checkouts in process memory.
type Store struct {
	mu        sync.RWMutex
	checkouts map[string]domain.Checkout
}

func NewStore() *Store {
	return &Store{checkouts: map[string]domain.Checkout{}}
}

func (s *Store) Save(_ context.Context, checkout *domain.Checkout) error {
	if checkout == nil || checkout.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkouts[checkout.SessionID] = *checkout
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.Checkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checkout, ok := s.checkouts[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := checkout
	return &copy, nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checkouts[sessionID]; !ok {
		return ports.ErrNotFound
	}
	delete(s.checkouts, sessionID)
	return nil
}
