package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	// CodeLength is the number of digits in a verification code.
	CodeLength = 6
	// DefaultTTL is how long a code stays valid.
	DefaultTTL = 5 * time.Minute
	// MaxAttempts is the number of wrong guesses before the challenge burns.
	MaxAttempts = 5
)

var (
	ErrEmptyDestination = errors.New("verification destination is required")
	ErrNotFound         = errors.New("verification challenge not found")
	ErrExpired          = errors.New("verification code expired")
	ErrTooManyAttempts  = errors.New("verification attempts exhausted")
	ErrCodeMismatch     = errors.New("verification code does not match")
	ErrConsumed         = errors.New("verification challenge already used")
)

// Challenge is a one-time code bound to a contact destination (email or phone).
type Challenge struct {
	Destination string
	Code        string
	Attempts    int
	Consumed    bool
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// NewChallenge issues a fresh challenge with a random numeric code.
func NewChallenge(destination string, ttl time.Duration) (*Challenge, error) {
	destination = NormalizeDestination(destination)
	if destination == "" {
		return nil, ErrEmptyDestination
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Challenge{
		Destination: destination,
		Code:        code,
		IssuedAt:    now,
		ExpiresAt:   now.Add(ttl),
	}, nil
}

// Verify checks a submitted code against the challenge, mutating attempt
// state. On success the challenge is consumed and cannot be replayed.
func (c *Challenge) Verify(code string, now time.Time) error {
	if c.Consumed {
		return ErrConsumed
	}
	if now.After(c.ExpiresAt) {
		return ErrExpired
	}
	if c.Attempts >= MaxAttempts {
		return ErrTooManyAttempts
	}
	c.Attempts++
	if subtle.ConstantTimeCompare([]byte(c.Code), []byte(strings.TrimSpace(code))) != 1 {
		if c.Attempts >= MaxAttempts {
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}
	c.Consumed = true
	return nil
}

// AttemptsLeft reports the remaining guesses.
func (c *Challenge) AttemptsLeft() int {
	left := MaxAttempts - c.Attempts
	if left < 0 {
		return 0
	}
	return left
}

// NormalizeDestination lower-cases and trims a contact address so challenges
// keyed by the same mailbox or number collapse to one entry.
func NormalizeDestination(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}

func generateCode() (string, error) {
	// uniform six digit code, 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
