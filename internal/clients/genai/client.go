// Package genai wraps the Gemini generateContent REST endpoint for the
// storefront assistant and the back-office security audit. The model is an
// opaque collaborator: the code depends only on the documented audit JSON
// schema, and a missing API key degrades every call to a canned offline
// answer instead of an error.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 15 * time.Second
)

// systemPersona frames every assistant answer.
const systemPersona = "Eres el experto en electrónica de Osart Elite, una tienda chilena de componentes. " +
	"Respondes en español, con precisión técnica y en pocas frases. " +
	"Solo recomiendas productos del catálogo entregado como contexto."

const (
	// OfflineAnswer is returned by the disabled client for assistant questions.
	OfflineAnswer = "El asistente experto no está disponible en este momento. " +
		"Revisa las guías incluidas en cada producto o escríbenos a contacto@osart.cl."
)

// AuditReport is the structured verdict of a security audit.
type AuditReport struct {
	Score           int      `json:"score"`
	Vulnerabilities []string `json:"vulnerabilities"`
	Recommendations []string `json:"recommendations"`
}

// OfflineAudit is the canned verdict when no model is reachable.
func OfflineAudit() *AuditReport {
	return &AuditReport{
		Score:           -1,
		Vulnerabilities: []string{"Auditoría no ejecutada: el modelo generativo no está configurado."},
		Recommendations: []string{"Configura GEMINI_API_KEY para habilitar la auditoría automática."},
	}
}

// Client calls the Gemini REST API. A nil *Client is the disabled client: all
// methods answer with the offline fallback and never fail.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds an enabled client.
func New(apiKey string, logger *slog.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	return &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}, nil
}

// NewFromEnv reads GEMINI_API_KEY. Absence yields the disabled client.
func NewFromEnv(logger *slog.Logger) *Client {
	client, err := New(os.Getenv("GEMINI_API_KEY"), logger)
	if err != nil {
		if logger != nil {
			logger.Warn("GEMINI_API_KEY not set, assistant runs in offline mode")
		}
		return nil
	}
	return client
}

// Enabled reports whether calls reach a real model.
func (c *Client) Enabled() bool {
	return c != nil
}

// Ask answers a free-text question grounded on the serialized catalog context.
// Failures return the offline answer, never an error that reaches the shopper.
func (c *Client) Ask(ctx context.Context, question, catalogContext string) string {
	if c == nil {
		return OfflineAnswer
	}
	prompt := question
	if strings.TrimSpace(catalogContext) != "" {
		prompt = fmt.Sprintf("Catálogo actual:\n%s\n\nPregunta del cliente: %s", catalogContext, question)
	}
	text, err := c.generate(ctx, systemPersona, prompt, false)
	if err != nil {
		c.logWarn(ctx, "assistant call failed, returning offline answer", err)
		return OfflineAnswer
	}
	return text
}

// Audit asks the model for a structured security verdict over a store
// snapshot. Failures return the canned offline audit.
func (c *Client) Audit(ctx context.Context, snapshot string) *AuditReport {
	if c == nil {
		return OfflineAudit()
	}
	instruction := "Eres un auditor de seguridad de aplicaciones web. Analiza el estado entregado y responde " +
		`únicamente con JSON válido: {"score": entero 0-100, "vulnerabilities": [cadenas], "recommendations": [cadenas]}.`
	text, err := c.generate(ctx, instruction, snapshot, true)
	if err != nil {
		c.logWarn(ctx, "audit call failed, returning offline audit", err)
		return OfflineAudit()
	}
	report, err := parseAudit(text)
	if err != nil {
		c.logWarn(ctx, "audit reply did not match the schema", err)
		return OfflineAudit()
	}
	return report
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, instruction, prompt string, jsonReply bool) (string, error) {
	request := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if jsonReply {
		request.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini reply: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini reply carried no candidates")
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

func parseAudit(text string) (*AuditReport, error) {
	// models occasionally fence the JSON even when asked not to
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	var report AuditReport
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &report); err != nil {
		return nil, fmt.Errorf("parse audit JSON: %w", err)
	}
	if report.Score < 0 || report.Score > 100 {
		return nil, fmt.Errorf("audit score %d out of range", report.Score)
	}
	return &report, nil
}

func (c *Client) logWarn(ctx context.Context, msg string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("error", err.Error()))
}
