package ports

import (
	"context"
	"errors"

	"github.com/thinkfashz/Osart/internal/domains/quiz/domain"
)

// ErrNotFound is returned when no run exists for the session.
var ErrNotFound = errors.New("quiz run not found")

// Store persists quiz runs keyed by session id.
type Store interface {
	Save(ctx context.Context, run *domain.Run) error
	Get(ctx context.Context, sessionID string) (*domain.Run, error)
	Delete(ctx context.Context, sessionID string) error
}

// QuestionView is the answer-free projection served to players.
type QuestionView struct {
	ID       int      `json:"id"`
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Score    int64    `json:"score"`
	Lives    int      `json:"lives"`
	Finished bool     `json:"finished"`
}

// Service exposes the quiz use cases.
type Service interface {
	Start(ctx context.Context, sessionID, email string) (*QuestionView, error)
	Current(ctx context.Context, sessionID string) (*QuestionView, error)
	Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.AnswerResult, error)
}
