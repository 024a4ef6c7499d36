package models

import "time"

// TimetableEntry is one placed class: a (subject, group) pair occupying a
// room at a (day, slot) cell. The full set for a tenant is replaced
// wholesale on every successful generation.
type TimetableEntry struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	Day       string    `db:"day" json:"day"`
	Slot      int       `db:"slot" json:"slot"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntryDetail joins display names for list and export views.
type TimetableEntryDetail struct {
	TimetableEntry
	SubjectName string  `db:"subject_name" json:"subject_name"`
	GroupName   string  `db:"group_name" json:"group_name"`
	RoomName    string  `db:"room_name" json:"room_name"`
	FacultyName *string `db:"faculty_name" json:"faculty_name,omitempty"`
	IsLab       bool    `db:"is_lab" json:"is_lab"`
}

// TimetableFilter describes query params for listing timetable entries.
type TimetableFilter struct {
	GroupID   string
	FacultyID string
	RoomID    string
	Day       string
}
