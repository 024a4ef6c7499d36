package models

import "time"

// Faculty is a teacher with a weekly workload cap. The cap is advisory:
// the solver pays a heavy objective penalty for exceeding it instead of
// refusing to schedule.
type Faculty struct {
	ID              string    `db:"id" json:"id"`
	TenantID        string    `db:"tenant_id" json:"tenant_id"`
	Name            string    `db:"name" json:"name"`
	MaxHoursPerWeek int       `db:"max_hours_per_week" json:"max_hours_per_week"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
