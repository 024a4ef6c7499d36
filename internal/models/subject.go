package models

import "time"

// Subject represents a weekly teaching obligation attached to a course.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	CourseID     string    `db:"course_id" json:"course_id"`
	HoursPerWeek int       `db:"hours_per_week" json:"hours_per_week"`
	FacultyID    *string   `db:"faculty_id" json:"faculty_id,omitempty"`
	IsLab        bool      `db:"is_lab" json:"is_lab"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
