package port

import (
	"context"
	"encoding/json"
)

// CompletionInput carries one structured-completion request to a vision model.
type CompletionInput struct {
	Instructions string         // system-level task description
	UserText     string         // user turn text, including any corroborating hint
	ImageURL     string         // image reference: https URL or data URI
	SchemaName   string         // short identifier for the shape contract
	Schema       map[string]any // JSON-schema shape contract; nil means free-form JSON
	Model        string         // model slug override; empty uses the provider default
}

// CompletionOutput contains the structured result from a model call.
type CompletionOutput struct {
	JSON      json.RawMessage
	ModelUsed string
}

// StructuredCompleter abstracts a vision model consumed as an opaque
// structured-completion capability.
type StructuredCompleter interface {
	Complete(ctx context.Context, input CompletionInput) (*CompletionOutput, error)
}
