package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
	"github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

const keyPrefix = "otp:"

var _ ports.Store = (*Store)(nil)

// Store keeps challenges in Redis. The key TTL tracks the challenge expiry so
// stale codes vanish without a purger.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Save(ctx context.Context, challenge *domain.Challenge) error {
	if challenge == nil || challenge.Destination == "" {
		return domain.ErrEmptyDestination
	}
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, keyPrefix+challenge.Destination, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, destination string) (*domain.Challenge, error) {
	payload, err := s.client.Get(ctx, keyPrefix+domain.NormalizeDestination(destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	var challenge domain.Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	return &challenge, nil
}

func (s *Store) Delete(ctx context.Context, destination string) error {
	if err := s.client.Del(ctx, keyPrefix+domain.NormalizeDestination(destination)).Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}
