package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rendix/internal/domain"
	"rendix/internal/normalize"
	"rendix/internal/port"
	"rendix/internal/schema"
	"rendix/internal/validator"
)

// Result holds the outcome of a successful extraction.
type Result struct {
	Record domain.Record
	Model  string
}

// Extractor turns a document photo into a normalized, validated record by
// sending the image and the per-type instructions to a structured completer.
type Extractor struct {
	completer port.StructuredCompleter
	engine    *validator.Engine
	models    map[domain.DocumentType]string
	now       func() time.Time
}

// NewExtractor creates an Extractor. The models map assigns a model per
// document type; types without an entry use the provider's default model.
func NewExtractor(completer port.StructuredCompleter, engine *validator.Engine, models map[domain.DocumentType]string) *Extractor {
	return newExtractor(completer, engine, models, time.Now)
}

// NewExtractorWithClock creates an Extractor with an explicit clock, used in
// tests to pin date defaulting.
func NewExtractorWithClock(completer port.StructuredCompleter, engine *validator.Engine, models map[domain.DocumentType]string, clock func() time.Time) *Extractor {
	return newExtractor(completer, engine, models, clock)
}

func newExtractor(completer port.StructuredCompleter, engine *validator.Engine, models map[domain.DocumentType]string, clock func() time.Time) *Extractor {
	if models == nil {
		models = map[domain.DocumentType]string{}
	}
	return &Extractor{
		completer: completer,
		engine:    engine,
		models:    models,
		now:       clock,
	}
}

// Extract runs a single completion for the given document type and returns
// the normalized record. Provider failures wrap domain.ErrModelInvocation;
// unusable model output and failed validation wrap domain.ErrRecordInvalid.
func (e *Extractor) Extract(ctx context.Context, docType domain.DocumentType, req domain.ExtractionRequest) (*Result, error) {
	s, err := schema.ForDocumentType(docType)
	if err != nil {
		return nil, err
	}

	instructions, err := InstructionsFor(docType)
	if err != nil {
		return nil, err
	}

	out, err := e.completer.Complete(ctx, port.CompletionInput{
		Instructions: instructions,
		UserText:     UserText(docType, req.FreeTextHint),
		ImageURL:     req.ImageReference,
		SchemaName:   s.Name,
		Schema:       s.JSONSchema(),
		Model:        e.models[docType],
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelInvocation, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(out.JSON, &raw); err != nil {
		return nil, fmt.Errorf("%w: model returned non-object JSON: %v", domain.ErrRecordInvalid, err)
	}

	rec := normalize.Apply(s, raw, e.now())
	if docType == domain.DocumentTypeReceipt {
		normalize.InferCurrency(rec, "pais", "moneda")
	}

	if err := e.engine.ValidateRecord(docType, rec); err != nil {
		return nil, err
	}

	return &Result{Record: rec, Model: out.ModelUsed}, nil
}
