package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/quiz/domain"
	"github.com/thinkfashz/Osart/internal/domains/quiz/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps quiz runs in process memory. Runs are short-lived and
// session-scoped, so no durable adapter exists.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*domain.Run
}

func NewStore() *Store {
	return &Store{runs: map[string]*domain.Run{}}
}

func (s *Store) Save(_ context.Context, run *domain.Run) error {
	if run == nil || run.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *run
	s.runs[run.SessionID] = &copy
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := *run
	return &copy, nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, sessionID)
	return nil
}
