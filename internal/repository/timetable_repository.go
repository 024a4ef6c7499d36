package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// TimetableRepository handles timetable entry persistence.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ListDetailed returns the tenant's timetable entries with joined display
// names, optionally narrowed by the filter, ordered by day and slot.
func (r *TimetableRepository) ListDetailed(ctx context.Context, tenantID string, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	query := `SELECT t.id, t.tenant_id, t.subject_id, t.group_id, t.room_id, t.day, t.slot, t.created_at,
            s.name AS subject_name, s.is_lab, g.name AS group_name, r.name AS room_name, f.name AS faculty_name
        FROM timetable_entries t
        JOIN subjects s ON s.id = t.subject_id
        JOIN student_groups g ON g.id = t.group_id
        JOIN rooms r ON r.id = t.room_id
        LEFT JOIN faculties f ON f.id = s.faculty_id
        WHERE t.tenant_id = $1`
	args := []interface{}{tenantID}
	if filter.GroupID != "" {
		query += fmt.Sprintf(" AND t.group_id = $%d", len(args)+1)
		args = append(args, filter.GroupID)
	}
	if filter.FacultyID != "" {
		query += fmt.Sprintf(" AND s.faculty_id = $%d", len(args)+1)
		args = append(args, filter.FacultyID)
	}
	if filter.RoomID != "" {
		query += fmt.Sprintf(" AND t.room_id = $%d", len(args)+1)
		args = append(args, filter.RoomID)
	}
	if filter.Day != "" {
		query += fmt.Sprintf(" AND t.day = $%d", len(args)+1)
		args = append(args, filter.Day)
	}
	query += " ORDER BY t.day ASC, t.slot ASC, g.name ASC"
	var entries []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// ReplaceForTenant atomically swaps the tenant's timetable: the previous
// entries are deleted and the new set inserted in one transaction, so a
// failed generation never leaves a half-written week.
func (r *TimetableRepository) ReplaceForTenant(ctx context.Context, tenantID string, entries []models.TimetableEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin timetable tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_entries WHERE tenant_id = $1`, tenantID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear timetable: %w", err)
	}
	const query = `INSERT INTO timetable_entries (id, tenant_id, subject_id, group_id, room_id, day, slot, created_at)
        VALUES (:id, :tenant_id, :subject_id, :group_id, :room_id, :day, :slot, :created_at)`
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		entries[i].TenantID = tenantID
		entries[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, entries[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert timetable entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit timetable tx: %w", err)
	}
	return nil
}
