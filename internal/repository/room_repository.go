package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// RoomRepository handles room persistence.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListByTenant returns the tenant's rooms ordered by name. A positive
// limit caps the result set; zero means unlimited.
func (r *RoomRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Room, error) {
	query := `SELECT id, tenant_id, name, capacity, type, created_at, updated_at
        FROM rooms WHERE tenant_id = $1 ORDER BY name ASC`
	args := []interface{}{tenantID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
