package mocks

import (
	"github.com/stretchr/testify/mock"

	"rendix/internal/domain"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) FuelDeliveriesXLSX(records []domain.Record, baseName string) ([]byte, string, error) {
	args := m.Called(records, baseName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockExportService) ExpensesCSV(records []domain.Record, baseName string) ([]byte, string, error) {
	args := m.Called(records, baseName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
