package pipeline

import (
	"context"

	"rendix/internal/domain"
	"rendix/internal/extractor"
	"rendix/internal/resolver"
)

// ExtractStage runs the model extraction and stores the normalized record.
type ExtractStage struct {
	Extractor *extractor.Extractor
}

func (s *ExtractStage) Name() string { return "extract" }

func (s *ExtractStage) Run(ctx context.Context, st *State) error {
	res, err := s.Extractor.Extract(ctx, st.DocumentType, st.Request)
	if err != nil {
		return err
	}
	st.Record = res.Record
	st.Model = res.Model
	return nil
}

// ResolveStage matches the person name under SourceKey against the driver
// directory and attaches the resolved identity to the record. Resolution
// never fails the run: an unmatched or unresolvable name leaves the identity
// absent.
type ResolveStage struct {
	Resolver  *resolver.Resolver
	SourceKey string
}

func (s *ResolveStage) Name() string { return "resolve" }

func (s *ResolveStage) Run(ctx context.Context, st *State) error {
	if st.Record == nil {
		return nil
	}
	name, _ := st.Record.String(s.SourceKey)
	identity := s.Resolver.Resolve(ctx, name)
	if identity != nil {
		st.Record[domain.KeyResolvedIdentity] = identity
	} else {
		st.Record[domain.KeyResolvedIdentity] = nil
	}
	return nil
}
