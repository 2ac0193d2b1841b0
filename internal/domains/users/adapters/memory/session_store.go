package memory

import (
	"context"
	"sync"
	"time"

	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, email, token string, _ time.Time) error {
	s.sessions.Store(email, token)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, email string) error {
	s.sessions.Delete(email)
	return nil
}
