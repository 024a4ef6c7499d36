package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// BackendError reports that the CP-SAT backend could not build or run the
// model. It is distinct from an INFEASIBLE outcome and must never be
// downgraded to one.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string { return fmt.Sprintf("solver backend: %v", e.Err) }

func (e *BackendError) Unwrap() error { return e.Err }

// Solve encodes the input and runs the CP-SAT search under the configured
// time budget. Exceeding the budget mid-search still yields the best
// feasible assignment found so far.
//
// A *ModelingError is returned together with an INFEASIBLE result when
// the data cannot be encoded at all; callers should follow up with
// Diagnose either way. A *BackendError is a genuine failure.
func Solve(in Input) (Result, error) {
	enc, err := Encode(in)
	if err != nil {
		return Result{Status: StatusInfeasible}, err
	}

	model, err := enc.builder.Model()
	if err != nil {
		return Result{}, &BackendError{Err: err}
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(in.Settings.TimeLimitSeconds),
	}
	resp, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return Result{}, &BackendError{Err: err}
	}

	result := Result{Variables: len(enc.vars)}
	switch resp.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		result.Status = StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		result.Status = StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		result.Status = StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return Result{}, &BackendError{Err: fmt.Errorf("model rejected as invalid")}
	default:
		result.Status = StatusUnknown
	}

	if result.Status.Solved() {
		result.Objective = resp.GetObjectiveValue()
		result.Placements = enc.extract(resp)
	}
	return result, nil
}

// extract decodes true decision variables into placements, ordered by
// event, day, slot and room so repeated extractions are identical.
func (enc *encoding) extract(resp *cmpb.CpSolverResponse) []Placement {
	var placements []Placement
	for e, ev := range enc.events {
		for d := 0; d < enc.grid.NumDays(); d++ {
			for sl := 0; sl < enc.grid.SlotsPerDay(); sl++ {
				for _, r := range ev.RoomIDs {
					if !cpmodel.SolutionBooleanValue(resp, enc.vars[varKey{e, d, sl, r}]) {
						continue
					}
					placements = append(placements, Placement{
						SubjectID: ev.Subject.ID,
						GroupID:   ev.Group.ID,
						RoomID:    r,
						Day:       enc.grid.Days[d],
						Slot:      enc.grid.Slots[sl],
						DayIndex:  d,
						SlotIndex: sl,
					})
				}
			}
		}
	}
	return placements
}
