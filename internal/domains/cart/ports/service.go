package ports

import (
	"context"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
)

// Service exposes cart use cases to transport adapters.
type Service interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}
