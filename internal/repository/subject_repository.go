package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// SubjectRepository handles subject persistence.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByTenant returns the tenant's subjects ordered by name. A positive
// limit caps the result set; zero means unlimited.
func (r *SubjectRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Subject, error) {
	query := `SELECT id, tenant_id, name, course_id, hours_per_week, faculty_id, is_lab, created_at, updated_at
        FROM subjects WHERE tenant_id = $1 ORDER BY name ASC`
	args := []interface{}{tenantID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
