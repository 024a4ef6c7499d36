package models

import "time"

// TimeSlot is one configured cell of the weekly grid. When a tenant has no
// configured slots the solver falls back to a default 6-day, 8-slot week.
type TimeSlot struct {
	ID         string    `db:"id" json:"id"`
	TenantID   string    `db:"tenant_id" json:"tenant_id"`
	Day        string    `db:"day" json:"day"`
	SlotNumber int       `db:"slot_number" json:"slot_number"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
