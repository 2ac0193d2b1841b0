package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/domains/quiz/ports"
)

// QuizAPI wires HTTP transport with the gamified quiz.
type QuizAPI struct {
	service ports.Service
}

func NewQuizAPI(service ports.Service) *QuizAPI {
	return &QuizAPI{service: service}
}

type answerPayload struct {
	OptionIndex int `json:"optionIndex"`
}

// Get /v1/quiz/:sessionId/question
// Current question for the session; opens a run on first touch. The optional
// email query binds the run to an account so finishing credits XP.
func (api *QuizAPI) CurrentQuestion(c *gin.Context) {
	view, err := api.service.Start(c.Request.Context(), c.Param("sessionId"), c.Query("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Post /v1/quiz/:sessionId/answer
func (api *QuizAPI) Answer(c *gin.Context) {
	var payload answerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.Answer(c.Request.Context(), c.Param("sessionId"), payload.OptionIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
