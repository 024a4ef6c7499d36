package models

import "time"

// StudentGroup is a cohort enrolled in a course. Groups inherit the
// course's subjects; the pairing of a subject with each of its course's
// groups is what the solver schedules.
type StudentGroup struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Size      int       `db:"size" json:"size"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
