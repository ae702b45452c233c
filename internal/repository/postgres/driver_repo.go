package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rendix/internal/domain"
	"rendix/internal/port"
)

type driverRepo struct {
	db *sqlx.DB
}

// NewDriverRepo creates a new PostgreSQL-backed DriverRepository.
func NewDriverRepo(db *sqlx.DB) port.DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) ListEntries(ctx context.Context) ([]domain.DirectoryEntry, error) {
	var entries []domain.DirectoryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT full_name, identifier
		 FROM drivers
		 WHERE active
		 ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("driverRepo.ListEntries: %w", err)
	}
	return entries, nil
}

func (r *driverRepo) Upsert(ctx context.Context, entry domain.DirectoryEntry) error {
	query := `INSERT INTO drivers (id, full_name, identifier, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT (identifier) DO UPDATE
		SET full_name = EXCLUDED.full_name, active = TRUE, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), entry.FullName, entry.Identifier)
	if err != nil {
		return fmt.Errorf("driverRepo.Upsert: %w", err)
	}
	return nil
}

func (r *driverRepo) Deactivate(ctx context.Context, identifier string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET active = FALSE, updated_at = NOW() WHERE identifier = $1`, identifier)
	if err != nil {
		return fmt.Errorf("driverRepo.Deactivate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}
