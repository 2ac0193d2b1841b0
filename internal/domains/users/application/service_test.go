package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/domains/users/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/users/domain"
	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

func newUserService(opts ...Option) *Service {
	return NewService(memory.NewRepository(), memory.NewSessionStore(), []byte("test-signing-key"), opts...)
}

func TestRegister_GrantsInitialPoints(t *testing.T) {
	svc := newUserService()

	user, err := svc.Register(context.Background(), "Ana Rojas", "ana@osart.cl", "secreto123")
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, user.Role)
	require.Equal(t, domain.InitialLearningPoints, user.LearningPoints)
	require.NotEqual(t, "secreto123", user.PasswordHash)
}

func TestRegister_AdminEmailGetsAdminRole(t *testing.T) {
	svc := newUserService(WithAdminEmail("admin@osart.cl"))

	admin, err := svc.Register(context.Background(), "Admin", "Admin@Osart.cl", "secreto123")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "Otra Ana", "ana@osart.cl", "distinto456")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestLogin_IssuesParsableToken(t *testing.T) {
	svc := newUserService(WithAdminEmail("admin@osart.cl"))

	_, err := svc.Register(context.Background(), "Admin", "admin@osart.cl", "secreto123")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "admin@osart.cl", "secreto123")
	require.NoError(t, err)
	require.True(t, user.IsAdmin())

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin@osart.cl", claims.Subject)
	require.Equal(t, string(domain.RoleAdmin), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ana@osart.cl", "incorrecta")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "nadie@osart.cl", "secreto123")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestCreditPoints_RejectsOverdraw(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)

	updated, err := svc.CreditPoints(context.Background(), "ana@osart.cl", 250)
	require.NoError(t, err)
	require.Equal(t, domain.InitialLearningPoints+250, updated.LearningPoints)

	_, err = svc.CreditPoints(context.Background(), "ana@osart.cl", -10000)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseToken_RejectsTamperedToken(t *testing.T) {
	svc := newUserService()
	other := NewService(memory.NewRepository(), memory.NewSessionStore(), []byte("other-key"))

	_, err := svc.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "ana@osart.cl", "secreto123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}
