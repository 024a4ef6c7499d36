package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// GroupRepository handles student group persistence.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListByTenant returns the tenant's student groups ordered by name. A
// positive limit caps the result set; zero means unlimited.
func (r *GroupRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.StudentGroup, error) {
	query := `SELECT id, tenant_id, name, course_id, size, created_at, updated_at
        FROM student_groups WHERE tenant_id = $1 ORDER BY name ASC`
	args := []interface{}{tenantID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var groups []models.StudentGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
