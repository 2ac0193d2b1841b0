package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
	"github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps challenges in process memory, used when Redis is not configured.
type Store struct {
	mu         sync.RWMutex
	challenges map[string]domain.Challenge
}

func NewStore() *Store {
	return &Store{challenges: map[string]domain.Challenge{}}
}

func (s *Store) Save(_ context.Context, challenge *domain.Challenge) error {
	if challenge == nil || challenge.Destination == "" {
		return domain.ErrEmptyDestination
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.Destination] = *challenge
	return nil
}

func (s *Store) Get(_ context.Context, destination string) (*domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[domain.NormalizeDestination(destination)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := challenge
	return &copy, nil
}

func (s *Store) Delete(_ context.Context, destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, domain.NormalizeDestination(destination))
	return nil
}
