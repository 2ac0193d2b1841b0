package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/clients/genai"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
)

// AssistantAPI grounds the expert Q&A on the live catalog. A nil genai client
// answers with the offline fallback, so the route never fails.
type AssistantAPI struct {
	client  *genai.Client
	catalog catalogports.Service
}

func NewAssistantAPI(client *genai.Client, catalog catalogports.Service) *AssistantAPI {
	return &AssistantAPI{client: client, catalog: catalog}
}

type askPayload struct {
	Question string `json:"question"`
}

// Post /v1/assistant/ask
func (api *AssistantAPI) Ask(c *gin.Context) {
	var payload askPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if strings.TrimSpace(payload.Question) == "" {
		respondBadRequest(c, errors.New("question is required"))
		return
	}
	answer := api.client.Ask(c.Request.Context(), payload.Question, api.catalogContext(c.Request.Context()))
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// catalogContext serializes the catalog into the grounding block the persona
// expects. A catalog failure degrades to an uncontextualized answer.
func (api *AssistantAPI) catalogContext(ctx context.Context) string {
	products, err := api.catalog.List(ctx, catalogports.Filter{})
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, item := range products {
		product := item.Entity
		fmt.Fprintf(&b, "- %s | %s | $%d CLP | stock %d\n",
			product.Name, product.Category, product.Price, product.Stock)
	}
	return b.String()
}
