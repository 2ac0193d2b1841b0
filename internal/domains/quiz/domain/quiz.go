package domain

import "errors"

const (
	// PointsPerCorrect is the XP awarded for each right answer.
	PointsPerCorrect int64 = 250
	// StartingLives is how many wrong answers a run survives.
	StartingLives = 3
)

var (
	ErrEmptySessionID = errors.New("quiz session id is required")
	ErrRunFinished    = errors.New("quiz run already finished")
	ErrInvalidOption  = errors.New("answer option out of range")
	ErrNoQuestions    = errors.New("quiz has no questions")
)

// Question is a multiple-choice entry. CorrectIndex never leaves the domain
// through the public question view.
type Question struct {
	ID           int
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Questions returns the fixed electronics question set.
func Questions() []Question {
	return []Question{
		{
			ID:     1,
			Prompt: "¿Qué valor tiene una resistencia con bandas café, negro y rojo?",
			Options: []string{
				"100 Ω", "1.000 Ω", "10.000 Ω", "1.000.000 Ω",
			},
			CorrectIndex: 1,
			Explanation:  "Café (1), negro (0) y multiplicador rojo (×100): 10 × 100 = 1.000 Ω.",
		},
		{
			ID:     2,
			Prompt: "Según la ley de Ohm, ¿qué corriente circula con 5V sobre 1kΩ?",
			Options: []string{
				"5 A", "0,5 A", "5 mA", "50 mA",
			},
			CorrectIndex: 2,
			Explanation:  "I = V/R = 5V / 1.000Ω = 0,005 A, es decir 5 mA.",
		},
		{
			ID:     3,
			Prompt: "¿Qué ocurre si conectas un capacitor electrolítico con la polaridad invertida?",
			Options: []string{
				"Funciona igual", "Aumenta su capacitancia", "Puede dañarse o explotar", "Se convierte en resistencia",
			},
			CorrectIndex: 2,
			Explanation:  "Los electrolíticos son polarizados: invertir la polaridad degrada el dieléctrico y puede reventar la cápsula.",
		},
		{
			ID:     4,
			Prompt: "En un transistor NPN usado como interruptor, ¿dónde se conecta la señal de control?",
			Options: []string{
				"Al colector", "A la base", "Al emisor", "A cualquiera de los tres",
			},
			CorrectIndex: 1,
			Explanation:  "La base controla la conducción entre colector y emisor, normalmente a través de una resistencia limitadora.",
		},
	}
}

// AnswerResult is the outcome of answering the current question.
type AnswerResult struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	Score       int64  `json:"score"`
	Lives       int    `json:"lives"`
	Finished    bool   `json:"finished"`
	GameOver    bool   `json:"gameOver"`
	AwardedXP   int64  `json:"awardedXp"`
}

// Run is one player's pass through the question set: wrong answers cost a
// life, 0 lives ends the run without XP, finishing awards the score.
type Run struct {
	SessionID string
	Email     string
	Index     int
	Score     int64
	Lives     int
	Finished  bool
	GameOver  bool
	questions []Question
}

// NewRun starts a run over the fixed question set.
func NewRun(sessionID, email string) (*Run, error) {
	questions := Questions()
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &Run{
		SessionID: sessionID,
		Email:     email,
		Lives:     StartingLives,
		questions: questions,
	}, nil
}

// Current returns the question the run is waiting on.
func (r *Run) Current() (Question, error) {
	if r.Finished {
		return Question{}, ErrRunFinished
	}
	return r.questions[r.Index], nil
}

// Answer grades an option against the current question and advances the run.
func (r *Run) Answer(optionIndex int) (*AnswerResult, error) {
	if r.Finished {
		return nil, ErrRunFinished
	}
	question := r.questions[r.Index]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, ErrInvalidOption
	}
	result := &AnswerResult{Explanation: question.Explanation}
	if optionIndex == question.CorrectIndex {
		result.Correct = true
		r.Score += PointsPerCorrect
	} else {
		r.Lives--
	}
	r.Index++
	if r.Lives <= 0 {
		r.Finished = true
		r.GameOver = true
		r.Score = 0
	} else if r.Index >= len(r.questions) {
		r.Finished = true
		result.AwardedXP = r.Score
	}
	result.Score = r.Score
	result.Lives = r.Lives
	result.Finished = r.Finished
	result.GameOver = r.GameOver
	return result, nil
}
