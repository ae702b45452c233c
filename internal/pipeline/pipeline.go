package pipeline

import (
	"context"
	"fmt"

	"rendix/internal/domain"
)

// State carries a document through the stages of its chain. Stages read the
// request fields and progressively fill the record.
type State struct {
	DocumentType domain.DocumentType
	Request      domain.ExtractionRequest
	Record       domain.Record
	Model        string
}

// Stage is a single step in a document chain. A stage returning an error
// aborts the run; stages that degrade gracefully report success and record
// their outcome in the state instead.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *State) error
}

// Runner executes the stage chain registered for a document type.
type Runner struct {
	chains map[domain.DocumentType][]Stage
}

// NewRunner creates a Runner from per-type stage chains.
func NewRunner(chains map[domain.DocumentType][]Stage) *Runner {
	return &Runner{chains: chains}
}

// Run executes the chain for the given document type and returns the final
// state.
func (r *Runner) Run(ctx context.Context, docType domain.DocumentType, req domain.ExtractionRequest) (*State, error) {
	chain, ok := r.chains[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocumentType, docType)
	}

	st := &State{
		DocumentType: docType,
		Request:      req,
	}
	for _, stage := range chain {
		if err := stage.Run(ctx, st); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return st, nil
}
