package solver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroutine/timetable-api/internal/models"
)

// balancedInput builds the "balanced week" fixture: 10 groups on their own
// courses, each loaded with five 4-hour lectures and one 4-hour lab
// (24h/group, 240h total) against 10 rooms x 48 slots, taught by 20
// faculty capped at 20h each.
func balancedInput() Input {
	in := Input{Settings: DefaultSettings()}
	in.Settings.TimeLimitSeconds = 20

	for i := 0; i < 8; i++ {
		in.Rooms = append(in.Rooms, models.Room{
			ID: fmt.Sprintf("hall-%d", i), Name: fmt.Sprintf("Hall %d", i),
			Type: models.RoomTypeLecture, Capacity: 60,
		})
	}
	for i := 0; i < 2; i++ {
		in.Rooms = append(in.Rooms, models.Room{
			ID: fmt.Sprintf("lab-%d", i), Name: fmt.Sprintf("Lab %d", i),
			Type: models.RoomTypeLab, Capacity: 60,
		})
	}
	for i := 0; i < 20; i++ {
		in.Faculties = append(in.Faculties, models.Faculty{
			ID: fmt.Sprintf("f%d", i), Name: fmt.Sprintf("Faculty %d", i),
			MaxHoursPerWeek: 20,
		})
	}

	subject := 0
	for g := 0; g < 10; g++ {
		course := fmt.Sprintf("course-%d", g)
		in.Groups = append(in.Groups, models.StudentGroup{
			ID: fmt.Sprintf("g%d", g), Name: fmt.Sprintf("Group %d", g),
			CourseID: course, Size: 30,
		})
		for s := 0; s < 6; s++ {
			fid := fmt.Sprintf("f%d", subject%20)
			in.Subjects = append(in.Subjects, models.Subject{
				ID:           fmt.Sprintf("s%d", subject),
				Name:         fmt.Sprintf("Subject %d", subject),
				CourseID:     course,
				HoursPerWeek: 4,
				FacultyID:    &fid,
				IsLab:        s == 5,
			})
			subject++
		}
	}
	return in
}

func TestSolveBalancedWeek(t *testing.T) {
	in := balancedInput()

	res, err := Solve(in)
	require.NoError(t, err)
	require.True(t, res.Status.Solved(), "expected a solved status, got %s", res.Status)

	// Every event lands exactly its weekly hours.
	perEvent := make(map[[2]string]int)
	for _, p := range res.Placements {
		perEvent[[2]string{p.SubjectID, p.GroupID}]++
	}
	assert.Len(t, perEvent, 60)
	for key, count := range perEvent {
		assert.Equal(t, 4, count, "event %v", key)
	}

	// No room, group or faculty is in two places at once.
	facultyOf := make(map[string]string)
	for _, s := range in.Subjects {
		facultyOf[s.ID] = *s.FacultyID
	}
	type cell struct {
		day  string
		slot int
	}
	roomsBusy := make(map[cell]map[string]bool)
	groupsBusy := make(map[cell]map[string]bool)
	facultyBusy := make(map[cell]map[string]bool)
	for _, p := range res.Placements {
		c := cell{p.Day, p.Slot}
		for _, pair := range []struct {
			busy map[cell]map[string]bool
			id   string
		}{
			{roomsBusy, p.RoomID},
			{groupsBusy, p.GroupID},
			{facultyBusy, facultyOf[p.SubjectID]},
		} {
			if pair.busy[c] == nil {
				pair.busy[c] = make(map[string]bool)
			}
			assert.False(t, pair.busy[c][pair.id],
				"%s double-booked at %s slot %d", pair.id, p.Day, p.Slot)
			pair.busy[c][pair.id] = true
		}
	}
}

func TestSolveGroupOverloadInfeasible(t *testing.T) {
	in := Input{Settings: DefaultSettings()}
	in.Settings.TimeLimitSeconds = 10
	in.Rooms = []models.Room{
		{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 60},
		{ID: "hall-b", Type: models.RoomTypeLecture, Capacity: 60},
	}
	in.Groups = []models.StudentGroup{
		{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30},
	}
	for i := 0; i < 5; i++ {
		in.Subjects = append(in.Subjects, models.Subject{
			ID: fmt.Sprintf("s%d", i), CourseID: "cs", HoursPerWeek: 10,
		})
	}

	res, err := Solve(in)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, res.Status)
	assert.Empty(t, res.Placements)

	// The diagnoser explains the failure.
	findings := Diagnose(in)
	require.NotEmpty(t, findings)
	assert.Equal(t, SeverityCritical, findings[0].Severity)
}

func TestSolveZeroWeightsStillEnforcesHardConstraints(t *testing.T) {
	in := Input{Settings: Settings{TimeLimitSeconds: 10, MaxConsecutiveLectures: 3}}
	in.Rooms = []models.Room{
		{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 60},
	}
	in.Groups = []models.StudentGroup{
		{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30},
		{ID: "g2", Name: "CS-B", CourseID: "cs", Size: 30},
	}
	in.Subjects = []models.Subject{
		{ID: "s1", CourseID: "cs", HoursPerWeek: 6},
	}

	res, err := Solve(in)
	require.NoError(t, err)
	require.True(t, res.Status.Solved())
	assert.Zero(t, res.Objective)
	assert.Len(t, res.Placements, 12)

	// With one room, the two groups can never share a cell.
	seen := make(map[[2]interface{}]bool)
	for _, p := range res.Placements {
		key := [2]interface{}{p.Day, p.Slot}
		assert.False(t, seen[key], "room double-booked at %s slot %d", p.Day, p.Slot)
		seen[key] = true
	}
}

func TestSolveOverloadPenaltyMonotonic(t *testing.T) {
	build := func(penalty int) Input {
		fid := "f1"
		in := Input{Settings: Settings{
			TimeLimitSeconds:       10,
			MaxConsecutiveLectures: 3,
			FacultyMaxHoursEnabled: true,
			MaxHoursPenalty:        penalty,
		}}
		in.Rooms = []models.Room{
			{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 60},
		}
		in.Faculties = []models.Faculty{
			{ID: fid, Name: "Overworked", MaxHoursPerWeek: 2},
		}
		in.Groups = []models.StudentGroup{
			{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30},
		}
		in.Subjects = []models.Subject{
			{ID: "s1", CourseID: "cs", HoursPerWeek: 5, FacultyID: &fid},
		}
		return in
	}

	// The faculty must teach 5 hours against a 2 hour cap: the excess of 3
	// is unavoidable, so the objective is exactly 3 x penalty.
	low, err := Solve(build(1))
	require.NoError(t, err)
	require.True(t, low.Status.Solved())

	high, err := Solve(build(10))
	require.NoError(t, err)
	require.True(t, high.Status.Solved())

	assert.InDelta(t, 3.0, low.Objective, 0.001)
	assert.InDelta(t, 30.0, high.Objective, 0.001)
	assert.GreaterOrEqual(t, high.Objective, low.Objective)
}

func TestSolveModelingErrors(t *testing.T) {
	t.Run("no rooms", func(t *testing.T) {
		in := Input{Settings: DefaultSettings()}
		in.Subjects = []models.Subject{{ID: "s1", CourseID: "cs", HoursPerWeek: 2}}
		in.Groups = []models.StudentGroup{{ID: "g1", CourseID: "cs", Size: 30}}

		res, err := Solve(in)
		var modErr *ModelingError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, StatusInfeasible, res.Status)
	})

	t.Run("no events", func(t *testing.T) {
		in := Input{Settings: DefaultSettings()}
		in.Rooms = []models.Room{{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 60}}
		in.Subjects = []models.Subject{{ID: "s1", CourseID: "cs", HoursPerWeek: 2}}

		res, err := Solve(in)
		var modErr *ModelingError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, StatusInfeasible, res.Status)
	})

	t.Run("event without eligible room", func(t *testing.T) {
		in := Input{Settings: DefaultSettings()}
		in.Rooms = []models.Room{{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 10}}
		in.Subjects = []models.Subject{{ID: "s1", Name: "Algorithms", CourseID: "cs", HoursPerWeek: 2}}
		in.Groups = []models.StudentGroup{{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30}}

		res, err := Solve(in)
		var modErr *ModelingError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, StatusInfeasible, res.Status)
		assert.Contains(t, modErr.Error(), "no eligible room")
	})
}

func TestSolveDeterministicExtraction(t *testing.T) {
	in := Input{Settings: Settings{TimeLimitSeconds: 10, MaxConsecutiveLectures: 3}}
	in.Rooms = []models.Room{
		{ID: "hall-a", Type: models.RoomTypeLecture, Capacity: 60},
	}
	in.Groups = []models.StudentGroup{
		{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30},
	}
	in.Subjects = []models.Subject{
		{ID: "s1", CourseID: "cs", HoursPerWeek: 3},
	}

	res, err := Solve(in)
	require.NoError(t, err)
	require.True(t, res.Status.Solved())
	require.Len(t, res.Placements, 3)

	// Placements come back in grid order.
	for i := 1; i < len(res.Placements); i++ {
		prev, cur := res.Placements[i-1], res.Placements[i]
		if prev.DayIndex == cur.DayIndex {
			assert.Less(t, prev.SlotIndex, cur.SlotIndex)
		} else {
			assert.Less(t, prev.DayIndex, cur.DayIndex)
		}
	}
}
