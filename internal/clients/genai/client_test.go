package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New("test-key", nil)
	require.NoError(t, err)
	client.baseURL = server.URL
	client.httpClient = server.Client()
	return client
}

func geminiReply(text string) generateResponse {
	var reply generateResponse
	reply.Candidates = append(reply.Candidates, struct {
		Content content `json:"content"`
	}{Content: content{Parts: []part{{Text: text}}}})
	return reply
}

func TestAsk_SendsPersonaAndContext(t *testing.T) {
	var request generateRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.NoError(t, json.NewEncoder(w).Encode(geminiReply("El 2N2222 soporta 800mA.")))
	})

	answer := client.Ask(context.Background(), "¿Cuánta corriente soporta el 2N2222?", "Transistor NPN 2N2222: $800")
	require.Equal(t, "El 2N2222 soporta 800mA.", answer)
	require.NotNil(t, request.SystemInstruction)
	require.Contains(t, request.SystemInstruction.Parts[0].Text, "Osart Elite")
	require.Contains(t, request.Contents[0].Parts[0].Text, "Transistor NPN 2N2222")
}

func TestAsk_FallsBackOnServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	answer := client.Ask(context.Background(), "hola", "")
	require.Equal(t, OfflineAnswer, answer)
}

func TestAudit_ParsesSchema(t *testing.T) {
	verdict := "```json\n{\"score\": 72, \"vulnerabilities\": [\"OTP sin límite de reintentos\"], \"recommendations\": [\"Agregar rate limiting\"]}\n```"
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(geminiReply(verdict)))
	})

	report := client.Audit(context.Background(), "{}")
	require.Equal(t, 72, report.Score)
	require.Len(t, report.Vulnerabilities, 1)
	require.Len(t, report.Recommendations, 1)
}

func TestAudit_MalformedReplyFallsBack(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(geminiReply("no soy JSON")))
	})

	report := client.Audit(context.Background(), "{}")
	require.Equal(t, OfflineAudit().Score, report.Score)
}

func TestDisabledClient(t *testing.T) {
	var client *Client
	require.False(t, client.Enabled())
	require.Equal(t, OfflineAnswer, client.Ask(context.Background(), "hola", ""))
	require.Equal(t, -1, client.Audit(context.Background(), "{}").Score)
}
