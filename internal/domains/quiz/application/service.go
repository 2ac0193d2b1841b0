package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thinkfashz/Osart/internal/domains/quiz/domain"
	"github.com/thinkfashz/Osart/internal/domains/quiz/ports"
	usersports "github.com/thinkfashz/Osart/internal/domains/users/ports"
)

// ErrInvalidInput signals the request violated a quiz invariant.
var ErrInvalidInput = errors.New("invalid quiz input")

// Service runs the gamified quiz. Finishing a run with lives left credits the
// score as learning points on the player's account.
type Service struct {
	store  ports.Store
	users  usersports.Service
	logger *slog.Logger
}

func NewService(store ports.Store, users usersports.Service, logger *slog.Logger) *Service {
	return &Service{store: store, users: users, logger: logger}
}

// Start opens a run for the session, resuming an unfinished one and starting
// over after a finished one.
func (s *Service) Start(ctx context.Context, sessionID, email string) (*ports.QuestionView, error) {
	run, err := s.store.Get(ctx, sessionID)
	if err == nil && !run.Finished {
		return s.view(run)
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	run, err = domain.NewRun(sessionID, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, run); err != nil {
		return nil, err
	}
	return s.view(run)
}

// Current returns the question the session is waiting on.
func (s *Service) Current(ctx context.Context, sessionID string) (*ports.QuestionView, error) {
	run, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(run)
}

// Answer grades the submitted option. XP is credited exactly once, when the
// run finishes with lives remaining.
func (s *Service) Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.AnswerResult, error) {
	run, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result, err := run.Answer(optionIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, run); err != nil {
		return nil, err
	}
	if result.AwardedXP > 0 && run.Email != "" && s.users != nil {
		if _, err := s.users.CreditPoints(ctx, run.Email, result.AwardedXP); err != nil && s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to credit quiz points",
				slog.String("email", run.Email), slog.String("error", err.Error()))
		}
	}
	return result, nil
}

func (s *Service) view(run *domain.Run) (*ports.QuestionView, error) {
	total := len(domain.Questions())
	view := &ports.QuestionView{
		Total:    total,
		Score:    run.Score,
		Lives:    run.Lives,
		Finished: run.Finished,
	}
	if run.Finished {
		return view, nil
	}
	question, err := run.Current()
	if err != nil {
		return nil, err
	}
	view.ID = question.ID
	view.Number = run.Index + 1
	view.Prompt = question.Prompt
	view.Options = append([]string(nil), question.Options...)
	return view, nil
}

var _ ports.Service = (*Service)(nil)
