package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

// DefaultTTL is how long an abandoned checkout survives.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "checkout:"

var _ ports.Store = (*Store)(nil)

// Store persists in-flight checkouts as JSON blobs in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Save(ctx context.Context, checkout *domain.Checkout) error {
	if checkout == nil || checkout.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	payload, err := json.Marshal(checkout)
	if err != nil {
		return fmt.Errorf("marshal checkout: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+checkout.SessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store checkout: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load checkout: %w", err)
	}
	var checkout domain.Checkout
	if err := json.Unmarshal(payload, &checkout); err != nil {
		return nil, fmt.Errorf("decode checkout: %w", err)
	}
	return &checkout, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("delete checkout: %w", err)
	}
	if deleted == 0 {
		return ports.ErrNotFound
	}
	return nil
}
