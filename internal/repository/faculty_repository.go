package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// FacultyRepository handles faculty persistence.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new faculty repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// ListByTenant returns the tenant's faculty ordered by name. A positive
// limit caps the result set; zero means unlimited.
func (r *FacultyRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Faculty, error) {
	query := `SELECT id, tenant_id, name, max_hours_per_week, created_at, updated_at
        FROM faculties WHERE tenant_id = $1 ORDER BY name ASC`
	args := []interface{}{tenantID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var faculties []models.Faculty
	if err := r.db.SelectContext(ctx, &faculties, query, args...); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return faculties, nil
}
