package ports

import (
	"context"
	"errors"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
)

// ErrNotFound is returned when no cart exists for the session.
var ErrNotFound = errors.New("cart not found")

// Store persists carts keyed by session id.
type Store interface {
	Save(ctx context.Context, cart *domain.Cart) error
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}
