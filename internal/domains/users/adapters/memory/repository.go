package memory

import (
	"context"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/users/domain"
	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[string]domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	}
	copy := *user
	r.users[user.Email] = copy
	return &copy, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := user
	return &copy, nil
}

func (r *Repository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, email)
	return nil
}
