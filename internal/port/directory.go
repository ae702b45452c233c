package port

import (
	"context"

	"rendix/internal/domain"
)

// Directory defines the contract for the external identity directory
// consulted during identity resolution. Every call returns a fresh snapshot;
// entries are never cached across pipeline runs.
type Directory interface {
	ListEntries(ctx context.Context) ([]domain.DirectoryEntry, error)
}

// DriverRepository manages the registered driver roster behind the Directory.
type DriverRepository interface {
	Directory
	Upsert(ctx context.Context, entry domain.DirectoryEntry) error
	Deactivate(ctx context.Context, identifier string) error
}
