package service

import (
	"context"
	"errors"
	"log"
	"time"

	"rendix/internal/domain"
	"rendix/internal/metrics"
	"rendix/internal/pipeline"
)

// AnalysisResult is the outcome of analyzing a single document photo.
type AnalysisResult struct {
	DocumentType domain.DocumentType `json:"document_type"`
	Record       domain.Record       `json:"record"`
	Model        string              `json:"model"`
}

// AnalysisService defines the document analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, docType domain.DocumentType, req domain.ExtractionRequest) (*AnalysisResult, error)
}

type analysisService struct {
	runner *pipeline.Runner
	m      *metrics.Metrics
}

// NewAnalysisService creates a new AnalysisService implementation. A nil
// metrics argument disables instrumentation.
func NewAnalysisService(runner *pipeline.Runner, m *metrics.Metrics) AnalysisService {
	return &analysisService{runner: runner, m: m}
}

func (s *analysisService) Analyze(ctx context.Context, docType domain.DocumentType, req domain.ExtractionRequest) (*AnalysisResult, error) {
	start := time.Now()
	st, err := s.runner.Run(ctx, docType, req)
	s.observe(docType, st, err, time.Since(start))
	if err != nil {
		log.Printf("analysisService.Analyze: %s analysis failed: %v", docType, err)
		return nil, err
	}

	log.Printf("analysisService.Analyze: %s analyzed with model %s in %s",
		docType, st.Model, time.Since(start).Round(time.Millisecond))
	return &AnalysisResult{
		DocumentType: docType,
		Record:       st.Record,
		Model:        st.Model,
	}, nil
}

func (s *analysisService) observe(docType domain.DocumentType, st *pipeline.State, err error, elapsed time.Duration) {
	if s.m == nil {
		return
	}

	outcome := "ok"
	switch {
	case errors.Is(err, domain.ErrModelInvocation):
		outcome = "model_error"
	case errors.Is(err, domain.ErrRecordInvalid):
		outcome = "invalid_record"
	case err != nil:
		outcome = "error"
	}
	s.m.ExtractionsTotal.WithLabelValues(string(docType), outcome).Inc()
	s.m.ExtractionDuration.WithLabelValues(string(docType)).Observe(elapsed.Seconds())

	if err == nil && st != nil && st.Record != nil {
		if v, ok := st.Record[domain.KeyResolvedIdentity]; ok {
			resolution := "absent"
			if v != nil {
				resolution = "resolved"
			}
			s.m.ResolutionsTotal.WithLabelValues(resolution).Inc()
		}
	}
}
