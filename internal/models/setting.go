package models

import "time"

// Setting is a per-tenant tunable consumed by the solver. Values are stored
// as strings and parsed into int/float/bool on use; unknown keys are kept
// but ignored by the solver.
type Setting struct {
	ID          string    `db:"id" json:"id"`
	TenantID    string    `db:"tenant_id" json:"tenant_id"`
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	Description *string   `db:"description" json:"description,omitempty"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SettingLastSolverScore stores the objective value of the most recent
// successful generation.
const SettingLastSolverScore = "LAST_SOLVER_SCORE"
