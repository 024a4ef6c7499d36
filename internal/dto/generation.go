package dto

import "github.com/openroutine/timetable-api/internal/solver"

// GenerateRequest carries optional per-run overrides for a generation.
type GenerateRequest struct {
	// TimeLimitSeconds overrides the tenant's configured solver budget for
	// this run only. The server-wide maximum still applies.
	TimeLimitSeconds *float64 `json:"time_limit_seconds" validate:"omitempty,gt=0"`
}

// GenerateResponse reports the outcome of a generation run. Findings is
// non-empty whenever the run did not produce a timetable.
type GenerateResponse struct {
	Status    string           `json:"status"`
	Entries   int              `json:"entries"`
	Score     *float64         `json:"score,omitempty"`
	Variables int              `json:"variables"`
	ElapsedMs int64            `json:"elapsed_ms"`
	Findings  []solver.Finding `json:"findings,omitempty"`
}

// Solved reports whether the run produced a stored timetable.
func (r *GenerateResponse) Solved() bool {
	return r.Status == solver.StatusOptimal.String() || r.Status == solver.StatusFeasible.String()
}
