package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
	"github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

// ErrInvalidInput signals the request violated a verification invariant.
var ErrInvalidInput = errors.New("invalid verification input")

// Service issues and confirms one-time codes. A destination holds at most one
// active challenge; issuing again replaces it.
type Service struct {
	store  ports.Store
	sender ports.Sender
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

// WithTTL overrides the default code lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store ports.Store, sender ports.Sender, opts ...Option) *Service {
	s := &Service{store: store, sender: sender, ttl: domain.DefaultTTL, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Issue creates a challenge for the destination and dispatches the code.
// Any previous challenge for the same destination is replaced.
func (s *Service) Issue(ctx context.Context, destination string) (*domain.Challenge, error) {
	challenge, err := domain.NewChallenge(destination, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, challenge); err != nil {
		return nil, fmt.Errorf("persist challenge: %w", err)
	}
	if err := s.sender.Send(ctx, challenge.Destination, challenge.Code); err != nil {
		return nil, fmt.Errorf("deliver code: %w", err)
	}
	return challenge, nil
}

// Confirm validates a submitted code. A correct code consumes the challenge;
// a wrong one burns an attempt, and exhausted challenges are deleted.
func (s *Service) Confirm(ctx context.Context, destination, code string) error {
	destination = domain.NormalizeDestination(destination)
	if destination == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyDestination)
	}
	challenge, err := s.store.Get(ctx, destination)
	if err != nil {
		return err
	}
	verifyErr := challenge.Verify(code, s.now())
	switch {
	case verifyErr == nil:
		return s.store.Delete(ctx, destination)
	case errors.Is(verifyErr, domain.ErrTooManyAttempts), errors.Is(verifyErr, domain.ErrExpired):
		_ = s.store.Delete(ctx, destination)
		return verifyErr
	default:
		if err := s.store.Save(ctx, challenge); err != nil {
			return fmt.Errorf("persist challenge: %w", err)
		}
		return verifyErr
	}
}

var _ ports.Service = (*Service)(nil)
