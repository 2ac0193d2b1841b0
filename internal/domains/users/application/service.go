package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thinkfashz/Osart/internal/domains/users/domain"
	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long an issued token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// ErrInvalidInput signals the request violated a user invariant.
var ErrInvalidInput = errors.New("invalid user input")

// Claims is the JWT payload issued on login.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service exposes user bounded context use cases. Tokens are signed JWTs;
// the session store keeps a copy per email so logout works across replicas.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	signingKey []byte
	adminEmail string
	ttl        time.Duration
}

type Option func(*Service)

// WithAdminEmail marks which address registers with back-office rights.
func WithAdminEmail(email string) Option {
	return func(s *Service) {
		s.adminEmail = strings.ToLower(strings.TrimSpace(email))
	}
}

// WithSessionTTL overrides the default token lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, signingKey []byte, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{repo: repo, sessions: sessions, signingKey: signingKey, ttl: DefaultSessionTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates an account. The configured admin email registers with the
// admin role; everyone else is a customer.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	role := domain.RoleCustomer
	if s.adminEmail != "" && strings.ToLower(strings.TrimSpace(email)) == s.adminEmail {
		role = domain.RoleAdmin
	}
	user, err := domain.NewUser(name, email, password, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, ports.ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

// Login checks credentials and issues a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil, ports.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ports.ErrInvalidCredentials
	}
	expiresAt := time.Now().Add(s.ttl)
	token, err := s.issueToken(user, expiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	if err := s.sessions.Save(ctx, user.Email, token, expiresAt); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout drops the stored session.
func (s *Service) Logout(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return
	}
	_ = s.sessions.Delete(ctx, email)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// CreditPoints applies an XP delta to the account.
func (s *Service) CreditPoints(ctx context.Context, email string, delta int64) (*domain.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := user.CreditPoints(delta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Save(ctx, user)
}

// ParseToken validates a session token and returns its claims.
func (s *Service) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func (s *Service) issueToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

var _ ports.Service = (*Service)(nil)
