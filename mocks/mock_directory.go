package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rendix/internal/domain"
)

// MockDirectory is a mock implementation of port.Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ListEntries(ctx context.Context) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}
