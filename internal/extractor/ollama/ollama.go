package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
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
	defaultBaseURL = "http://localhost:11434/api"
	defaultModel   = "llama3.2-vision"
)

func init() {
	extractor.RegisterProvider("ollama", func(cfg *config.CompleterProviderConfig) (port.StructuredCompleter, error) {
		return NewClient(cfg), nil
	})
}

// Client implements port.StructuredCompleter against a local Ollama server.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// chatRequest represents a request to the Ollama chat API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  chatOptions   `json:"options,omitempty"`
}

// chatMessage represents a chat message. Images carry raw base64 payloads.
type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// chatOptions represents parameter options for the model.
type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// chatResponse represents a non-streaming response from the Ollama chat API.
type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Model      string `json:"model"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
}

// NewClient creates an Ollama-based completer from a provider config. The
// Endpoint field overrides the default local server URL.
func NewClient(cfg *config.CompleterProviderConfig) *Client {
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	model := input.Model
	if model == "" {
		model = c.model
	}

	var images []string
	if input.ImageURL != "" {
		image, err := c.imageData(ctx, input.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("loading image: %w", err)
		}
		images = []string{image}
	}

	content := input.UserText
	if input.Schema != nil {
		schemaJSON, merr := json.MarshalIndent(input.Schema, "", "  ")
		if merr == nil {
			content += "\n\nJSON Schema:\n" + string(schemaJSON)
		}
	}

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: input.Instructions},
			{Role: "user", Content: content, Images: images},
		},
		Stream: false,
		Format: "json",
		Options: chatOptions{
			Temperature: 0,
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling ollama API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody, model)
}

// imageData resolves an image reference into a raw base64 payload. Data URIs
// are unwrapped; http(s) URLs are fetched and encoded.
func (c *Client) imageData(ctx context.Context, imageURL string) (string, error) {
	if strings.HasPrefix(imageURL, "data:") {
		_, payload, ok := strings.Cut(imageURL, ",")
		if !ok {
			return "", fmt.Errorf("malformed data URI")
		}
		return payload, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating image request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func parseResponse(body []byte, model string) (*port.CompletionOutput, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if resp.DoneReason == "length" {
		return nil, fmt.Errorf("output truncated (done_reason: length): response exceeded output token limit")
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return nil, fmt.Errorf("empty response from API: no message content")
	}

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

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
