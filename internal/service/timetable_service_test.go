package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/solver"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
)

type stubSubjectRepo struct {
	subjects []models.Subject
	limit    int
}

func (s *stubSubjectRepo) ListByTenant(_ context.Context, _ string, limit int) ([]models.Subject, error) {
	s.limit = limit
	return s.subjects, nil
}

type stubGroupRepo struct{ groups []models.StudentGroup }

func (s *stubGroupRepo) ListByTenant(_ context.Context, _ string, _ int) ([]models.StudentGroup, error) {
	return s.groups, nil
}

type stubRoomRepo struct{ rooms []models.Room }

func (s *stubRoomRepo) ListByTenant(_ context.Context, _ string, _ int) ([]models.Room, error) {
	return s.rooms, nil
}

type stubFacultyRepo struct{ faculties []models.Faculty }

func (s *stubFacultyRepo) ListByTenant(_ context.Context, _ string, _ int) ([]models.Faculty, error) {
	return s.faculties, nil
}

type stubTimeSlotRepo struct{ slots []models.TimeSlot }

func (s *stubTimeSlotRepo) ListByTenant(_ context.Context, _ string) ([]models.TimeSlot, error) {
	return s.slots, nil
}

type stubTimetableStore struct {
	stored  []models.TimetableEntry
	listed  []models.TimetableEntryDetail
	swapped bool
}

func (s *stubTimetableStore) ListDetailed(_ context.Context, _ string, _ models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	return s.listed, nil
}

func (s *stubTimetableStore) ReplaceForTenant(_ context.Context, _ string, entries []models.TimetableEntry) error {
	s.stored = entries
	s.swapped = true
	return nil
}

type stubSettingStore struct {
	values   map[string]string
	upserted []models.Setting
}

func (s *stubSettingStore) MapForTenant(_ context.Context, _ string) (map[string]string, error) {
	return s.values, nil
}

func (s *stubSettingStore) Upsert(_ context.Context, setting *models.Setting) error {
	s.upserted = append(s.upserted, *setting)
	return nil
}

type timetableFixture struct {
	svc       *TimetableService
	timetable *stubTimetableStore
	settings  *stubSettingStore
	subjects  *stubSubjectRepo
}

func newTimetableFixture(t *testing.T) *timetableFixture {
	t.Helper()
	fid := "f1"
	subjects := &stubSubjectRepo{subjects: []models.Subject{
		{ID: "s1", Name: "Algorithms", CourseID: "cs", HoursPerWeek: 2, FacultyID: &fid},
	}}
	timetable := &stubTimetableStore{}
	settings := &stubSettingStore{values: map[string]string{}}
	svc := NewTimetableService(
		subjects,
		&stubGroupRepo{groups: []models.StudentGroup{{ID: "g1", Name: "CS-A", CourseID: "cs", Size: 30}}},
		&stubRoomRepo{rooms: []models.Room{{ID: "r1", Name: "Hall A", Type: models.RoomTypeLecture, Capacity: 60}}},
		&stubFacultyRepo{faculties: []models.Faculty{{ID: fid, Name: "Dr. Rao", MaxHoursPerWeek: 20}}},
		&stubTimeSlotRepo{},
		timetable,
		settings,
		nil,
		nil,
		nil,
		nil,
		TimetableServiceConfig{MaxTimeLimit: 60 * time.Second},
	)
	return &timetableFixture{svc: svc, timetable: timetable, settings: settings, subjects: subjects}
}

func TestTimetableServiceGenerateStoresSolution(t *testing.T) {
	f := newTimetableFixture(t)
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		assert.InDelta(t, 30.0, in.Settings.TimeLimitSeconds, 0.001)
		return solver.Result{
			Status:    solver.StatusOptimal,
			Objective: 40,
			Variables: 96,
			Placements: []solver.Placement{
				{SubjectID: "s1", GroupID: "g1", RoomID: "r1", Day: "Monday", Slot: 1},
				{SubjectID: "s1", GroupID: "g1", RoomID: "r1", Day: "Tuesday", Slot: 1},
			},
		}, nil
	}

	resp, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OPTIMAL", resp.Status)
	assert.Equal(t, 2, resp.Entries)
	assert.Empty(t, resp.Findings)
	require.NotNil(t, resp.Score)
	assert.Equal(t, 40.0, *resp.Score)

	require.True(t, f.timetable.swapped)
	require.Len(t, f.timetable.stored, 2)
	assert.Equal(t, "Monday", f.timetable.stored[0].Day)

	require.Len(t, f.settings.upserted, 1)
	assert.Equal(t, models.SettingLastSolverScore, f.settings.upserted[0].Key)
	assert.Equal(t, strconv.FormatFloat(40, 'f', -1, 64), f.settings.upserted[0].Value)
}

func TestTimetableServiceGenerateInfeasibleReturnsFindings(t *testing.T) {
	f := newTimetableFixture(t)
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		return solver.Result{Status: solver.StatusInfeasible}, nil
	}
	f.svc.diagnose = func(in solver.Input) []solver.Finding {
		return []solver.Finding{{Severity: solver.SeverityCritical, Message: "Group 'CS-A' requires 50 hours/week, but there are only 48 slots available."}}
	}

	resp, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INFEASIBLE", resp.Status)
	assert.False(t, resp.Solved())
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, solver.SeverityCritical, resp.Findings[0].Severity)

	assert.False(t, f.timetable.swapped, "an unsolved run must not touch the stored timetable")
	assert.Empty(t, f.settings.upserted)
}

func TestTimetableServiceGenerateInfeasibleNeverReturnsEmptyReport(t *testing.T) {
	f := newTimetableFixture(t)
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		return solver.Result{Status: solver.StatusInfeasible}, nil
	}
	f.svc.diagnose = func(in solver.Input) []solver.Finding { return nil }

	resp, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Findings)
}

func TestTimetableServiceGenerateModelingError(t *testing.T) {
	f := newTimetableFixture(t)
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		return solver.Result{Status: solver.StatusInfeasible},
			&solver.ModelingError{Reason: "no rooms available"}
	}
	f.svc.diagnose = func(in solver.Input) []solver.Finding { return nil }

	resp, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INFEASIBLE", resp.Status)
	require.Len(t, resp.Findings, 1)
	assert.Contains(t, resp.Findings[0].Message, "no rooms available")
}

func TestTimetableServiceGenerateBackendError(t *testing.T) {
	f := newTimetableFixture(t)
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		return solver.Result{}, &solver.BackendError{Err: assert.AnError}
	}

	_, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSolverBackend.Code, appErr.Code)
}

func TestTimetableServiceGenerateClampsTimeLimit(t *testing.T) {
	f := newTimetableFixture(t)
	f.settings.values = map[string]string{solver.KeySolverTimeLimit: "9000"}
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		assert.InDelta(t, 60.0, in.Settings.TimeLimitSeconds, 0.001)
		return solver.Result{Status: solver.StatusFeasible}, nil
	}

	_, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)

	override := 5.0
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		assert.InDelta(t, 5.0, in.Settings.TimeLimitSeconds, 0.001)
		return solver.Result{Status: solver.StatusFeasible}, nil
	}
	_, err = f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{TimeLimitSeconds: &override})
	require.NoError(t, err)
}

func TestTimetableServiceGenerateAppliesEntityLimits(t *testing.T) {
	f := newTimetableFixture(t)
	f.settings.values = map[string]string{solver.KeyLimitMaxSubjects: "25"}
	f.svc.solve = func(in solver.Input) (solver.Result, error) {
		return solver.Result{Status: solver.StatusFeasible}, nil
	}

	_, err := f.svc.Generate(context.Background(), "u1", dto.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 25, f.subjects.limit)
}

func TestTimetableServiceGrouped(t *testing.T) {
	f := newTimetableFixture(t)
	faculty := "Dr. Rao"
	f.timetable.listed = []models.TimetableEntryDetail{
		{
			TimetableEntry: models.TimetableEntry{Day: "Monday", Slot: 2, GroupID: "g1"},
			SubjectName:    "Algorithms", GroupName: "CS-A", RoomName: "Hall A", FacultyName: &faculty,
		},
		{
			TimetableEntry: models.TimetableEntry{Day: "Monday", Slot: 1, GroupID: "g1"},
			SubjectName:    "Databases", GroupName: "CS-A", RoomName: "Hall A",
		},
	}

	view, err := f.svc.Grouped(context.Background(), "u1")
	require.NoError(t, err)
	require.Contains(t, view, "CS-A")
	monday := view["CS-A"]["Monday"]
	require.Len(t, monday, 2)
	assert.Equal(t, 1, monday[0].Slot)
	assert.Equal(t, "Databases", monday[0].SubjectName)
	assert.Equal(t, 2, monday[1].Slot)
}
