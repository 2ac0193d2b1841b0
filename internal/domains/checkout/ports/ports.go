package ports

import (
	"context"
	"errors"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
)

var (
	// ErrNotFound is returned when no checkout exists for the session.
	ErrNotFound = errors.New("checkout not found")
	// ErrOrderNotFound is returned when no order matches the identifier.
	ErrOrderNotFound = errors.New("order not found")
)

// Store persists in-flight checkouts keyed by session id.
type Store interface {
	Save(ctx context.Context, checkout *domain.Checkout) error
	Get(ctx context.Context, sessionID string) (*domain.Checkout, error)
	Delete(ctx context.Context, sessionID string) error
}

// OrderRepository persists settled orders.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
}

// Sink hands a settled order to the external persistence collaborator.
// Failures are reported but must never block the purchase flow.
type Sink interface {
	Publish(ctx context.Context, order *domain.Order) error
}

// Orchestrator drives order settlement, durably when a workflow engine is
// reachable and inline otherwise.
type Orchestrator interface {
	SettleOrder(ctx context.Context, order *domain.Order) error
}

// Service exposes the checkout pipeline to transport adapters.
type Service interface {
	Start(ctx context.Context, sessionID string) (*domain.Checkout, error)
	Get(ctx context.Context, sessionID string) (*domain.Checkout, error)
	RequestVerification(ctx context.Context, sessionID, email string) error
	ConfirmVerification(ctx context.Context, sessionID, email, code string) error
	SubmitIdentity(ctx context.Context, sessionID string, identity domain.Identity) (*domain.Checkout, error)
	SubmitShipping(ctx context.Context, sessionID, address, city string, region domain.Region) (*domain.Checkout, error)
	Back(ctx context.Context, sessionID string) (*domain.Checkout, error)
	Confirm(ctx context.Context, sessionID string, method domain.PaymentMethod) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	AdvanceOrder(ctx context.Context, id string, next domain.Status) (*domain.Order, error)
}
