package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/domains/verification/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
)

type capturingSender struct {
	destination string
	code        string
}

func (s *capturingSender) Send(_ context.Context, destination, code string) error {
	s.destination = destination
	s.code = code
	return nil
}

func TestIssue_DeliversSixDigitCode(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(memory.NewStore(), sender)

	challenge, err := svc.Issue(context.Background(), "  Cliente@Osart.cl ")
	require.NoError(t, err)
	require.Equal(t, "cliente@osart.cl", challenge.Destination)
	require.Len(t, challenge.Code, domain.CodeLength)
	require.Equal(t, challenge.Code, sender.code)
	require.Equal(t, challenge.Destination, sender.destination)
}

func TestIssue_ReplacesPreviousChallenge(t *testing.T) {
	sender := &capturingSender{}
	store := memory.NewStore()
	svc := NewService(store, sender)

	first, err := svc.Issue(context.Background(), "cliente@osart.cl")
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), "cliente@osart.cl")
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), "cliente@osart.cl", first.Code)
	if err != nil {
		// a collision between two random codes is possible but vanishingly rare
		require.ErrorIs(t, err, domain.ErrCodeMismatch)
	}
}

func TestConfirm_ConsumesChallenge(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(memory.NewStore(), sender)

	challenge, err := svc.Issue(context.Background(), "cliente@osart.cl")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), "cliente@osart.cl", challenge.Code))
	err = svc.Confirm(context.Background(), "cliente@osart.cl", challenge.Code)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_WrongCodeBurnsAttempts(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(memory.NewStore(), sender)

	challenge, err := svc.Issue(context.Background(), "cliente@osart.cl")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == challenge.Code {
		wrong = "000001"
	}
	for i := 0; i < domain.MaxAttempts-1; i++ {
		err = svc.Confirm(context.Background(), "cliente@osart.cl", wrong)
		require.ErrorIs(t, err, domain.ErrCodeMismatch)
	}
	err = svc.Confirm(context.Background(), "cliente@osart.cl", wrong)
	require.ErrorIs(t, err, domain.ErrTooManyAttempts)

	// challenge was deleted, even the right code no longer works
	err = svc.Confirm(context.Background(), "cliente@osart.cl", challenge.Code)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_ExpiredCode(t *testing.T) {
	sender := &capturingSender{}
	current := time.Now()
	svc := NewService(memory.NewStore(), sender, WithClock(func() time.Time { return current }))

	challenge, err := svc.Issue(context.Background(), "cliente@osart.cl")
	require.NoError(t, err)

	current = current.Add(domain.DefaultTTL + time.Minute)
	err = svc.Confirm(context.Background(), "cliente@osart.cl", challenge.Code)
	require.ErrorIs(t, err, domain.ErrExpired)
}

func TestIssue_EmptyDestination(t *testing.T) {
	svc := NewService(memory.NewStore(), &capturingSender{})

	_, err := svc.Issue(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}
