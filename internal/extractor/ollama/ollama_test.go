package ollama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendix/internal/config"
	"rendix/internal/port"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Format   string `json:"format"`
	Messages []struct {
		Role    string   `json:"role"`
		Content string   `json:"content"`
		Images  []string `json:"images"`
	} `json:"messages"`
	Options struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

func respBody(content, doneReason, model string) []byte {
	b, _ := json.Marshal(map[string]any{
		"model":       model,
		"message":     map[string]any{"role": "assistant", "content": content},
		"done":        true,
		"done_reason": doneReason,
	})
	return b
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(&config.CompleterProviderConfig{Endpoint: srv.URL + "/api"})
}

func TestCompleteRequestShape(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write(respBody(`{"litros": 350}`, "stop", "llama3.2-vision"))
	})

	out, err := c.Complete(context.Background(), port.CompletionInput{
		Instructions: "Extrae los campos.",
		UserText:     "Extrae los campos del documento de la imagen.",
		ImageURL:     "data:image/jpeg;base64,QUJDRA==",
		SchemaName:   "remito_combustible",
		Schema:       map[string]any{"type": "object"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"litros": 350}`, string(out.JSON))
	assert.Equal(t, "llama3.2-vision", out.ModelUsed)

	assert.Equal(t, defaultModel, captured.Model)
	assert.False(t, captured.Stream)
	assert.Equal(t, "json", captured.Format)
	assert.Equal(t, float64(0), captured.Options.Temperature)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "Extrae los campos.", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "JSON Schema:")
	assert.Equal(t, []string{"QUJDRA=="}, captured.Messages[1].Images)
}

func TestCompleteFetchesRemoteImage(t *testing.T) {
	raw := []byte("imagen-cruda")
	var captured capturedRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/boleta.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(raw)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write(respBody(`{}`, "stop", ""))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(&config.CompleterProviderConfig{Endpoint: srv.URL + "/api"})
	_, err := c.Complete(context.Background(), port.CompletionInput{
		UserText: "Extrae los campos.",
		ImageURL: srv.URL + "/boleta.jpg",
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, []string{base64.StdEncoding.EncodeToString(raw)}, captured.Messages[1].Images)
}

func TestCompleteMalformedDataURI(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.Complete(context.Background(), port.CompletionInput{ImageURL: "data:image/jpeg;base64"})
	assert.ErrorContains(t, err, "malformed data URI")
}

func TestCompleteTruncatedOutput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(respBody(`{"litros": 3`, "length", ""))
	})

	_, err := c.Complete(context.Background(), port.CompletionInput{UserText: "Extrae."})
	assert.ErrorContains(t, err, "truncated")
}

func TestCompleteEmptyContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(respBody("", "stop", ""))
	})

	_, err := c.Complete(context.Background(), port.CompletionInput{UserText: "Extrae."})
	assert.ErrorContains(t, err, "no message content")
}

func TestCompleteServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := c.Complete(context.Background(), port.CompletionInput{UserText: "Extrae."})
	assert.ErrorContains(t, err, "status 500")
}

func TestCompleteMalformedContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(respBody("no hay json aca", "stop", ""))
	})

	_, err := c.Complete(context.Background(), port.CompletionInput{UserText: "Extrae."})
	assert.ErrorContains(t, err, "parsing LLM JSON output")
}
