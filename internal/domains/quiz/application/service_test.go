package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/domains/quiz/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/quiz/domain"
	usersmemory "github.com/thinkfashz/Osart/internal/domains/users/adapters/memory"
	usersapp "github.com/thinkfashz/Osart/internal/domains/users/application"
	usersdomain "github.com/thinkfashz/Osart/internal/domains/users/domain"
)

func newQuizFixture(t *testing.T) (*Service, *usersapp.Service) {
	t.Helper()
	users := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore(), []byte("test-key"))
	return NewService(memory.NewStore(), users, nil), users
}

func answerAll(t *testing.T, svc *Service, sessionID string, correct bool) *domain.AnswerResult {
	t.Helper()
	var last *domain.AnswerResult
	for {
		view, err := svc.Current(context.Background(), sessionID)
		require.NoError(t, err)
		if view.Finished {
			return last
		}
		option := correctOption(view.ID)
		if !correct {
			option = wrongOption(view.ID)
		}
		last, err = svc.Answer(context.Background(), sessionID, option)
		require.NoError(t, err)
	}
}

func correctOption(questionID int) int {
	for _, q := range domain.Questions() {
		if q.ID == questionID {
			return q.CorrectIndex
		}
	}
	return 0
}

func wrongOption(questionID int) int {
	idx := correctOption(questionID)
	if idx == 0 {
		return 1
	}
	return 0
}

func TestPerfectRun_AwardsScoreAsXP(t *testing.T) {
	svc, users := newQuizFixture(t)
	_, err := users.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)

	view, err := svc.Start(context.Background(), "sess-1", "ana@osart.cl")
	require.NoError(t, err)
	require.Equal(t, domain.StartingLives, view.Lives)
	require.Equal(t, 1, view.Number)

	last := answerAll(t, svc, "sess-1", true)
	expected := int64(len(domain.Questions())) * domain.PointsPerCorrect
	require.True(t, last.Finished)
	require.False(t, last.GameOver)
	require.Equal(t, expected, last.Score)
	require.Equal(t, expected, last.AwardedXP)

	user, err := users.GetByEmail(context.Background(), "ana@osart.cl")
	require.NoError(t, err)
	require.Equal(t, usersdomain.InitialLearningPoints+expected, user.LearningPoints)
}

func TestThreeWrongAnswers_EndRunWithoutXP(t *testing.T) {
	svc, users := newQuizFixture(t)
	_, err := users.Register(context.Background(), "Ana", "ana@osart.cl", "secreto123")
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), "sess-1", "ana@osart.cl")
	require.NoError(t, err)

	last := answerAll(t, svc, "sess-1", false)
	require.True(t, last.GameOver)
	require.Zero(t, last.Score)
	require.Zero(t, last.Lives)

	user, err := users.GetByEmail(context.Background(), "ana@osart.cl")
	require.NoError(t, err)
	require.Equal(t, usersdomain.InitialLearningPoints, user.LearningPoints)
}

func TestCurrentView_NeverLeaksCorrectIndex(t *testing.T) {
	svc, _ := newQuizFixture(t)

	view, err := svc.Start(context.Background(), "sess-1", "")
	require.NoError(t, err)
	require.NotEmpty(t, view.Options)
	require.NotEmpty(t, view.Prompt)
	require.Equal(t, len(domain.Questions()), view.Total)
}

func TestAnswer_OutOfRangeOption(t *testing.T) {
	svc, _ := newQuizFixture(t)

	_, err := svc.Start(context.Background(), "sess-1", "")
	require.NoError(t, err)
	_, err = svc.Answer(context.Background(), "sess-1", 99)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStart_RestartsFinishedRun(t *testing.T) {
	svc, _ := newQuizFixture(t)

	_, err := svc.Start(context.Background(), "sess-1", "")
	require.NoError(t, err)
	answerAll(t, svc, "sess-1", true)

	view, err := svc.Start(context.Background(), "sess-1", "")
	require.NoError(t, err)
	require.False(t, view.Finished)
	require.Equal(t, 1, view.Number)
	require.Zero(t, view.Score)
}
