package ports

import (
	"context"
	"errors"
	"time"

	"github.com/thinkfashz/Osart/internal/domains/users/domain"
)

var (
	// ErrNotFound is returned when no user matches the email.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an existing address.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository persists user accounts keyed by email.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
}

// SessionStore tracks issued tokens so logout and purging work across replicas.
type SessionStore interface {
	Save(ctx context.Context, email, token string, expiresAt time.Time) error
	Delete(ctx context.Context, email string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string, time.Time) error { return nil }
func (noopSessionStore) Delete(context.Context, string) error                  { return nil }

// Service exposes user use cases.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, email string)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CreditPoints(ctx context.Context, email string, delta int64) (*domain.User, error)
}
