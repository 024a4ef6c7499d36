package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// TimeSlotRepository handles time slot persistence.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository creates a new time slot repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// ListByTenant returns the tenant's configured grid cells in stable order.
// An empty result means the tenant uses the default week.
func (r *TimeSlotRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.TimeSlot, error) {
	const query = `SELECT id, tenant_id, day, slot_number, start_time, end_time, created_at
        FROM time_slots WHERE tenant_id = $1 ORDER BY day ASC, slot_number ASC`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, tenantID); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}
