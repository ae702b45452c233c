package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rendix/internal/config"
	"rendix/internal/extractor"
	"rendix/internal/port"
)

const (
	apiURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel = "google/gemini-2.5-flash-lite-preview-09-2025"
)

func init() {
	extractor.RegisterProvider("openrouter", func(cfg *config.CompleterProviderConfig) (port.StructuredCompleter, error) {
		return NewClient(cfg), nil
	})
}

// Client implements port.StructuredCompleter using the OpenRouter Chat
// Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenRouter-based completer from a provider config.
func NewClient(cfg *config.CompleterProviderConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newClient(cfg, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.CompleterProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.CompleterProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	model := input.Model
	if model == "" {
		model = c.model
	}

	reqBody := map[string]interface{}{
		"model":       model,
		"temperature": 0,
		"max_tokens":  16384,
		"messages":    buildMessages(input),
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openrouter API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openrouter API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extractor.NewRateLimitError("openrouter", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, model)
}

// buildMessages assembles the system instructions, the user text plus image
// block, and the target JSON schema as a trailing system message. Text-only
// inputs carry no image block.
func buildMessages(input port.CompletionInput) []map[string]interface{} {
	var user interface{} = input.UserText
	if input.ImageURL != "" {
		user = []map[string]interface{}{
			{
				"type": "text",
				"text": input.UserText,
			},
			{
				"type": "image_url",
				"image_url": map[string]interface{}{
					"url": input.ImageURL,
				},
			},
		}
	}

	messages := []map[string]interface{}{
		{"role": "system", "content": input.Instructions},
		{"role": "user", "content": user},
	}
	if input.Schema != nil {
		schemaJSON, err := json.MarshalIndent(input.Schema, "", "  ")
		if err == nil {
			messages = append(messages, map[string]interface{}{
				"role":    "system",
				"content": "JSON Schema:\n" + string(schemaJSON),
			})
		}
	}
	return messages
}

// apiResponse models the OpenRouter Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Model string `json:"model"`
}

func parseResponse(body []byte, model string) (*port.CompletionOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := stripFences(resp.Choices[0].Message.Content)

	var js json.RawMessage
	if err := json.Unmarshal([]byte(text), &js); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	used := resp.Model
	if used == "" {
		used = model
	}
	return &port.CompletionOutput{
		JSON:      js,
		ModelUsed: used,
	}, nil
}

// stripFences removes a surrounding markdown code fence, which some models
// emit despite json_object mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
