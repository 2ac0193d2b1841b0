package ports

import (
	"context"

	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
)

// Store persists one active challenge per destination.
type Store interface {
	Save(ctx context.Context, challenge *domain.Challenge) error
	Get(ctx context.Context, destination string) (*domain.Challenge, error)
	Delete(ctx context.Context, destination string) error
}

// Purger removes stale challenges. Implemented by stores that keep history
// around (PostgreSQL); TTL-backed stores purge on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Sender delivers a code to the shopper, usually over email or SMS.
type Sender interface {
	Send(ctx context.Context, destination, code string) error
}

// Service exposes the verification use cases.
type Service interface {
	Issue(ctx context.Context, destination string) (*domain.Challenge, error)
	Confirm(ctx context.Context, destination, code string) error
}
