package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// ModelingError reports data that cannot be encoded at all: no events, no
// rooms, or an event with no eligible room. It is raised before the
// backend is invoked and is equivalent to an immediate INFEASIBLE.
type ModelingError struct {
	Reason string
}

func (e *ModelingError) Error() string { return e.Reason }

type varKey struct {
	event int
	day   int
	slot  int
	room  string
}

// encoding holds the built model plus the lookups needed to decode a
// solution back into placements.
type encoding struct {
	builder *cpmodel.Builder
	obj     *cpmodel.LinearExpr
	grid    Grid
	events  []Event
	vars    map[varKey]cpmodel.BoolVar
}

// Encode expands events, computes room eligibility, and emits the full
// constraint model: one boolean per (event, day, slot, eligible room),
// the four hard constraint families, and the enabled soft penalty terms.
func Encode(in Input) (*encoding, error) {
	if len(in.Rooms) == 0 {
		return nil, &ModelingError{Reason: "no rooms available"}
	}

	events := ExpandEvents(in.Subjects, in.Groups)
	if len(events) == 0 {
		return nil, &ModelingError{Reason: "no schedulable events: no subject has an enrolled group"}
	}

	for i := range events {
		events[i].RoomIDs = EligibleRooms(events[i], in.Rooms, in.Settings)
		if len(events[i].RoomIDs) == 0 {
			return nil, &ModelingError{Reason: fmt.Sprintf(
				"subject %q for group %q has no eligible room",
				events[i].Subject.Name, events[i].Group.Name)}
		}
	}

	grid := NewGrid(in.TimeSlots)
	enc := &encoding{
		builder: cpmodel.NewCpModelBuilder(),
		obj:     cpmodel.NewLinearExpr(),
		grid:    grid,
		events:  events,
		vars:    make(map[varKey]cpmodel.BoolVar),
	}

	numDays := grid.NumDays()
	slotsPerDay := grid.SlotsPerDay()

	for e := range events {
		for d := 0; d < numDays; d++ {
			for sl := 0; sl < slotsPerDay; sl++ {
				for _, r := range events[e].RoomIDs {
					enc.vars[varKey{e, d, sl, r}] = enc.builder.NewBoolVar()
				}
			}
		}
	}

	// Grouped indices built once and reused by every constraint family.
	eventsByRoom := make(map[string][]int)
	eventsByGroup := make(map[string][]int)
	eventsByFaculty := make(map[string][]int)
	for e, ev := range events {
		for _, r := range ev.RoomIDs {
			eventsByRoom[r] = append(eventsByRoom[r], e)
		}
		eventsByGroup[ev.Group.ID] = append(eventsByGroup[ev.Group.ID], e)
		if fid := ev.FacultyID(); fid != "" {
			eventsByFaculty[fid] = append(eventsByFaculty[fid], e)
		}
	}

	enc.addHardConstraints(eventsByRoom, eventsByGroup, eventsByFaculty, in)
	enc.addSoftConstraints(eventsByFaculty, in)

	enc.builder.Minimize(enc.obj)
	return enc, nil
}

// addHardConstraints emits the non-negotiable families: exact hours per
// event and at-most-one occupancy per room, group and faculty cell.
func (enc *encoding) addHardConstraints(eventsByRoom, eventsByGroup, eventsByFaculty map[string][]int, in Input) {
	numDays := enc.grid.NumDays()
	slotsPerDay := enc.grid.SlotsPerDay()

	for e, ev := range enc.events {
		total := cpmodel.NewLinearExpr()
		for d := 0; d < numDays; d++ {
			for sl := 0; sl < slotsPerDay; sl++ {
				for _, r := range ev.RoomIDs {
					total.Add(enc.vars[varKey{e, d, sl, r}])
				}
			}
		}
		enc.builder.AddEquality(total, cpmodel.NewConstant(int64(ev.Hours)))
	}

	one := cpmodel.NewConstant(1)
	for d := 0; d < numDays; d++ {
		for sl := 0; sl < slotsPerDay; sl++ {
			for _, room := range in.Rooms {
				occupancy := cpmodel.NewLinearExpr()
				for _, e := range eventsByRoom[room.ID] {
					occupancy.Add(enc.vars[varKey{e, d, sl, room.ID}])
				}
				enc.builder.AddLessOrEqual(occupancy, one)
			}

			for _, group := range in.Groups {
				attendance := cpmodel.NewLinearExpr()
				for _, e := range eventsByGroup[group.ID] {
					for _, r := range enc.events[e].RoomIDs {
						attendance.Add(enc.vars[varKey{e, d, sl, r}])
					}
				}
				enc.builder.AddLessOrEqual(attendance, one)
			}

			for _, fac := range in.Faculties {
				teaching := cpmodel.NewLinearExpr()
				for _, e := range eventsByFaculty[fac.ID] {
					for _, r := range enc.events[e].RoomIDs {
						teaching.Add(enc.vars[varKey{e, d, sl, r}])
					}
				}
				enc.builder.AddLessOrEqual(teaching, one)
			}
		}
	}
}

// addSoftConstraints emits the toggleable penalty families into the
// shared objective.
func (enc *encoding) addSoftConstraints(eventsByFaculty map[string][]int, in Input) {
	s := in.Settings
	numDays := enc.grid.NumDays()
	slotsPerDay := enc.grid.SlotsPerDay()

	// Faculty overload: linear excess over the weekly cap, not a hard
	// ceiling. The schedule always exists; overload just costs.
	if s.FacultyMaxHoursEnabled {
		for _, fac := range in.Faculties {
			eventIdxs := eventsByFaculty[fac.ID]
			if len(eventIdxs) == 0 {
				continue
			}
			taught := cpmodel.NewLinearExpr()
			for _, e := range eventIdxs {
				for d := 0; d < numDays; d++ {
					for sl := 0; sl < slotsPerDay; sl++ {
						for _, r := range enc.events[e].RoomIDs {
							taught.Add(enc.vars[varKey{e, d, sl, r}])
						}
					}
				}
			}
			taught.AddConstant(int64(-fac.MaxHoursPerWeek))
			excess := enc.builder.NewIntVar(0, int64(enc.grid.TotalCells()))
			enc.builder.AddGreaterOrEqual(excess, taught)
			enc.obj.AddTerm(excess, int64(s.MaxHoursPenalty))
		}
	}

	// Faculty over-consecutive: slide a window of MaxConsecutiveLectures+1
	// contiguous slots and charge once per overflowing window. Overlapping
	// windows may charge a single long run more than once; that escalation
	// is deliberate.
	if s.FacultyConsecutiveEnabled {
		for _, fac := range in.Faculties {
			eventIdxs := eventsByFaculty[fac.ID]
			if len(eventIdxs) == 0 {
				continue
			}
			for d := 0; d < numDays; d++ {
				for start := 0; start < slotsPerDay-s.MaxConsecutiveLectures; start++ {
					window := cpmodel.NewLinearExpr()
					for delta := 0; delta <= s.MaxConsecutiveLectures; delta++ {
						sl := start + delta
						for _, e := range eventIdxs {
							for _, r := range enc.events[e].RoomIDs {
								window.Add(enc.vars[varKey{e, d, sl, r}])
							}
						}
					}
					enc.penalizeIfAbove(window, int64(s.MaxConsecutiveLectures), int64(s.ConsecutivePenalty))
				}
			}
		}
	}

	for e, ev := range enc.events {
		if ev.Subject.IsLab && s.LabConsecutiveEnabled {
			enc.addLabFragmentationPenalty(e, int64(s.ConsecutiveLabsWeight))
		}
		if !ev.Subject.IsLab && s.SubjectDistributionEnabled && ev.Hours <= numDays {
			enc.addClusteringPenalty(e, int64(s.SameDayMultiPenalty))
		}
	}
}

// addLabFragmentationPenalty charges the event once per (sl, sl+1, sl+2)
// window where it occupies the outer slots but not the middle one.
func (enc *encoding) addLabFragmentationPenalty(e int, weight int64) {
	slotsPerDay := enc.grid.SlotsPerDay()
	for d := 0; d < enc.grid.NumDays(); d++ {
		for sl := 0; sl < slotsPerDay-2; sl++ {
			at0 := enc.eventAtSlot(e, d, sl)
			at1 := enc.eventAtSlot(e, d, sl+1)
			at2 := enc.eventAtSlot(e, d, sl+2)

			// fragmented >= at0 - at1 + at2 - 1, so the indicator is
			// forced to 1 exactly when the gap pattern holds.
			fragmented := enc.builder.NewBoolVar()
			pattern := cpmodel.NewLinearExpr()
			pattern.Add(at0)
			pattern.AddTerm(at1, -1)
			pattern.Add(at2)
			pattern.AddConstant(-1)
			enc.builder.AddGreaterOrEqual(fragmented, pattern)
			enc.obj.AddTerm(fragmented, weight)
		}
	}
}

// addClusteringPenalty charges the event once per day carrying more than
// one of its placements.
func (enc *encoding) addClusteringPenalty(e int, weight int64) {
	slotsPerDay := enc.grid.SlotsPerDay()
	for d := 0; d < enc.grid.NumDays(); d++ {
		day := cpmodel.NewLinearExpr()
		for sl := 0; sl < slotsPerDay; sl++ {
			for _, r := range enc.events[e].RoomIDs {
				day.Add(enc.vars[varKey{e, d, sl, r}])
			}
		}
		enc.penalizeIfAbove(day, 1, weight)
	}
}

// eventAtSlot returns a boolean equal to the event's occupancy of the
// given cell. Group exclusivity already bounds the room sum to one, so
// the equality is well defined.
func (enc *encoding) eventAtSlot(e, d, sl int) cpmodel.BoolVar {
	at := enc.builder.NewBoolVar()
	sum := cpmodel.NewLinearExpr()
	for _, r := range enc.events[e].RoomIDs {
		sum.Add(enc.vars[varKey{e, d, sl, r}])
	}
	enc.builder.AddEquality(at, sum)
	return at
}

// penalizeIfAbove reifies "sum > threshold" into an indicator and adds it
// to the objective scaled by weight. Shared by the overwork and
// clustering families.
func (enc *encoding) penalizeIfAbove(sum *cpmodel.LinearExpr, threshold, weight int64) {
	indicator := enc.builder.NewBoolVar()
	bound := cpmodel.NewConstant(threshold)
	enc.builder.AddGreaterThan(sum, bound).OnlyEnforceIf(indicator)
	enc.builder.AddLessOrEqual(sum, bound).OnlyEnforceIf(indicator.Not())
	enc.obj.AddTerm(indicator, weight)
}
