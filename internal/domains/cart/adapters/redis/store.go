package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
	"github.com/thinkfashz/Osart/internal/domains/cart/ports"
)

// DefaultTTL is how long an untouched cart survives.
const DefaultTTL = 72 * time.Hour

const keyPrefix = "cart:"

var _ ports.Store = (*Store)(nil)

// Store persists carts as JSON blobs in Redis with a sliding TTL.
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

func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil || cart.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+cart.SessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	// refresh the sliding expiry on read
	s.client.Expire(ctx, keyPrefix+sessionID, s.ttl)
	return &cart, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if deleted == 0 {
		return ports.ErrNotFound
	}
	return nil
}
