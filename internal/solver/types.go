// Package solver encodes a tenant's institutional data as a CP-SAT model,
// runs it under a time budget, and explains infeasible models with
// independent capacity analyses. The package is pure: it holds no mutable
// state and may be invoked concurrently for different tenants.
package solver

import (
	"github.com/openroutine/timetable-api/internal/models"
)

// Status is the outcome of a solve attempt.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Solved reports whether the status carries a usable assignment.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Input bundles one tenant's entities and tunables for a single solve.
// The solver never mutates it.
type Input struct {
	Subjects  []models.Subject
	Groups    []models.StudentGroup
	Rooms     []models.Room
	Faculties []models.Faculty
	TimeSlots []models.TimeSlot
	Settings  Settings
}

// Event is one (subject, group) teaching obligation requiring Hours weekly
// placements. RoomIDs lists the rooms the event may legally use.
type Event struct {
	Subject models.Subject
	Group   models.StudentGroup
	Hours   int
	RoomIDs []string
}

// FacultyID returns the teaching faculty id, or "" when unassigned.
func (e Event) FacultyID() string {
	if e.Subject.FacultyID == nil {
		return ""
	}
	return *e.Subject.FacultyID
}

// Placement is one cell of the solved timetable.
type Placement struct {
	SubjectID string
	GroupID   string
	RoomID    string
	Day       string
	Slot      int
	DayIndex  int
	SlotIndex int
}

// Result is the outcome of a solve: a status plus, when Solved, the flat
// assignment list and the achieved objective value (lower is better).
type Result struct {
	Status     Status
	Placements []Placement
	Objective  float64
	// Variables is the size of the decision space that was encoded,
	// exposed for instrumentation.
	Variables int
}

// Severity ranks diagnostic findings.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
)

// Finding is one human-readable reason a model may have no solution.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return string(f.Severity) + ": " + f.Message
}
