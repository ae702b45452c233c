package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rendix/internal/domain"
	"rendix/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, docType domain.DocumentType, req domain.ExtractionRequest) (*service.AnalysisResult, error) {
	args := m.Called(ctx, docType, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisResult), args.Error(1)
}
