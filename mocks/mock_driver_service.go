package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rendix/internal/domain"
)

// MockDriverService is a mock implementation of service.DriverService.
type MockDriverService struct {
	mock.Mock
}

func (m *MockDriverService) List(ctx context.Context) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}

func (m *MockDriverService) Upsert(ctx context.Context, entry domain.DirectoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDriverService) Deactivate(ctx context.Context, identifier string) error {
	args := m.Called(ctx, identifier)
	return args.Error(0)
}
