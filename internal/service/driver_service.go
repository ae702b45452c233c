package service

import (
	"context"
	"fmt"
	"strings"

	"rendix/internal/domain"
	"rendix/internal/port"
)

// DriverService manages the registered driver roster used by identity
// resolution.
type DriverService interface {
	List(ctx context.Context) ([]domain.DirectoryEntry, error)
	Upsert(ctx context.Context, entry domain.DirectoryEntry) error
	Deactivate(ctx context.Context, identifier string) error
}

type driverService struct {
	repo port.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(repo port.DriverRepository) DriverService {
	return &driverService{repo: repo}
}

func (s *driverService) List(ctx context.Context) ([]domain.DirectoryEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	return entries, nil
}

func (s *driverService) Upsert(ctx context.Context, entry domain.DirectoryEntry) error {
	entry.FullName = strings.TrimSpace(entry.FullName)
	entry.Identifier = strings.TrimSpace(entry.Identifier)
	if entry.FullName == "" || entry.Identifier == "" {
		return fmt.Errorf("driverService.Upsert: full_name and identifier are required")
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("driverService.Upsert: %w", err)
	}
	return nil
}

func (s *driverService) Deactivate(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return fmt.Errorf("driverService.Deactivate: identifier is required")
	}
	if err := s.repo.Deactivate(ctx, identifier); err != nil {
		return fmt.Errorf("driverService.Deactivate: %w", err)
	}
	return nil
}
