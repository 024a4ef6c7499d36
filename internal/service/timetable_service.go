package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/solver"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
)

type subjectLister interface {
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Subject, error)
}

type groupLister interface {
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.StudentGroup, error)
}

type roomLister interface {
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Room, error)
}

type facultyLister interface {
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.Faculty, error)
}

type timeSlotLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.TimeSlot, error)
}

type timetableStore interface {
	ListDetailed(ctx context.Context, tenantID string, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error)
	ReplaceForTenant(ctx context.Context, tenantID string, entries []models.TimetableEntry) error
}

type settingStore interface {
	MapForTenant(ctx context.Context, tenantID string) (map[string]string, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// solveFunc runs one solve; swapped out in tests.
type solveFunc func(in solver.Input) (solver.Result, error)

// TimetableServiceConfig carries process-level solver bounds.
type TimetableServiceConfig struct {
	// MaxTimeLimit caps the per-run solver budget regardless of tenant
	// settings or request overrides.
	MaxTimeLimit time.Duration
}

// TimetableService orchestrates timetable generation and retrieval for one
// request at a time; it holds no per-tenant state and is safe for
// concurrent use.
type TimetableService struct {
	subjects  subjectLister
	groups    groupLister
	rooms     roomLister
	faculties facultyLister
	timeSlots timeSlotLister
	timetable timetableStore
	settings  settingStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    TimetableServiceConfig

	solve    solveFunc
	diagnose func(in solver.Input) []solver.Finding
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(
	subjects subjectLister,
	groups groupLister,
	rooms roomLister,
	faculties facultyLister,
	timeSlots timeSlotLister,
	timetable timetableStore,
	settings settingStore,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		subjects:  subjects,
		groups:    groups,
		rooms:     rooms,
		faculties: faculties,
		timeSlots: timeSlots,
		timetable: timetable,
		settings:  settings,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    cfg,
		solve:     solver.Solve,
		diagnose:  solver.Diagnose,
	}
}

// Generate runs a full solve for the tenant and, on success, replaces the
// stored timetable wholesale. On an unsolvable model the response carries
// the diagnostic report instead of an assignment.
func (s *TimetableService) Generate(ctx context.Context, tenantID string, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	values, err := s.settings.MapForTenant(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	settings := solver.SettingsFromMap(values)
	if req.TimeLimitSeconds != nil {
		settings.TimeLimitSeconds = *req.TimeLimitSeconds
	}
	settings.TimeLimitSeconds = s.clampTimeLimit(settings.TimeLimitSeconds)

	input, err := s.loadInput(ctx, tenantID, settings)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := s.solve(input)
	elapsed := time.Since(started)

	if err != nil {
		var modErr *solver.ModelingError
		if errors.As(err, &modErr) {
			findings := s.diagnose(input)
			if len(findings) == 0 {
				findings = []solver.Finding{{Severity: solver.SeverityCritical, Message: modErr.Reason}}
			}
			s.metrics.ObserveSolve(solver.StatusInfeasible.String(), 0, 0, false, elapsed)
			s.logger.Info("timetable model could not be encoded",
				zap.String("tenant_id", tenantID),
				zap.String("reason", modErr.Reason))
			return &dto.GenerateResponse{
				Status:    solver.StatusInfeasible.String(),
				ElapsedMs: elapsed.Milliseconds(),
				Findings:  findings,
			}, nil
		}
		s.metrics.ObserveSolve("ERROR", 0, 0, false, elapsed)
		s.logger.Error("solver backend failure", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSolverBackend.Code, appErrors.ErrSolverBackend.Status, appErrors.ErrSolverBackend.Message)
	}

	s.metrics.ObserveSolve(result.Status.String(), result.Variables, result.Objective, result.Status.Solved(), elapsed)

	if !result.Status.Solved() {
		findings := s.diagnose(input)
		if len(findings) == 0 {
			findings = []solver.Finding{{
				Severity: solver.SeverityWarning,
				Message:  "No capacity bottleneck detected; the conflict likely comes from overlapping room, group or faculty requirements. Try relaxing settings or raising the solver time limit.",
			}}
		}
		s.logger.Info("timetable generation found no solution",
			zap.String("tenant_id", tenantID),
			zap.String("status", result.Status.String()),
			zap.Int("findings", len(findings)),
			zap.Duration("elapsed", elapsed))
		return &dto.GenerateResponse{
			Status:    result.Status.String(),
			Variables: result.Variables,
			ElapsedMs: elapsed.Milliseconds(),
			Findings:  findings,
		}, nil
	}

	entries := make([]models.TimetableEntry, 0, len(result.Placements))
	for _, p := range result.Placements {
		entries = append(entries, models.TimetableEntry{
			SubjectID: p.SubjectID,
			GroupID:   p.GroupID,
			RoomID:    p.RoomID,
			Day:       p.Day,
			Slot:      p.Slot,
		})
	}
	if err := s.timetable.ReplaceForTenant(ctx, tenantID, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}

	score := result.Objective
	if err := s.settings.Upsert(ctx, &models.Setting{
		TenantID: tenantID,
		Key:      models.SettingLastSolverScore,
		Value:    strconv.FormatFloat(score, 'f', -1, 64),
	}); err != nil {
		// The timetable is already stored; a stale score is not worth
		// failing the request over.
		s.logger.Warn("failed to persist solver score", zap.String("tenant_id", tenantID), zap.Error(err))
	}
	s.cache.InvalidateGrouped(ctx, tenantID)

	s.logger.Info("timetable generated",
		zap.String("tenant_id", tenantID),
		zap.String("status", result.Status.String()),
		zap.Int("entries", len(entries)),
		zap.Float64("score", score),
		zap.Duration("elapsed", elapsed))

	return &dto.GenerateResponse{
		Status:    result.Status.String(),
		Entries:   len(entries),
		Score:     &score,
		Variables: result.Variables,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

// List returns the stored timetable with joined display names.
func (s *TimetableService) List(ctx context.Context, tenantID string, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	entries, err := s.timetable.ListDetailed(ctx, tenantID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return entries, nil
}

// Grouped returns the timetable arranged by group and day, served from the
// cache when warm.
func (s *TimetableService) Grouped(ctx context.Context, tenantID string) (dto.GroupedTimetable, error) {
	var cached dto.GroupedTimetable
	if s.cache.GetGrouped(ctx, tenantID, &cached) {
		return cached, nil
	}

	entries, err := s.timetable.ListDetailed(ctx, tenantID, models.TimetableFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	view := make(dto.GroupedTimetable)
	for _, e := range entries {
		byDay, ok := view[e.GroupName]
		if !ok {
			byDay = make(map[string][]dto.TimetableCell)
			view[e.GroupName] = byDay
		}
		byDay[e.Day] = append(byDay[e.Day], dto.TimetableCell{
			Slot:        e.Slot,
			SubjectName: e.SubjectName,
			RoomName:    e.RoomName,
			FacultyName: e.FacultyName,
			IsLab:       e.IsLab,
		})
	}
	for _, byDay := range view {
		for _, cells := range byDay {
			sort.Slice(cells, func(i, j int) bool { return cells[i].Slot < cells[j].Slot })
		}
	}

	s.cache.SetGrouped(ctx, tenantID, view)
	return view, nil
}

func (s *TimetableService) loadInput(ctx context.Context, tenantID string, settings solver.Settings) (solver.Input, error) {
	wrap := func(err error, msg string) error {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msg)
	}

	subjects, err := s.subjects.ListByTenant(ctx, tenantID, settings.LimitMaxSubjects)
	if err != nil {
		return solver.Input{}, wrap(err, "failed to load subjects")
	}
	groups, err := s.groups.ListByTenant(ctx, tenantID, settings.LimitMaxGroups)
	if err != nil {
		return solver.Input{}, wrap(err, "failed to load groups")
	}
	rooms, err := s.rooms.ListByTenant(ctx, tenantID, settings.LimitMaxRooms)
	if err != nil {
		return solver.Input{}, wrap(err, "failed to load rooms")
	}
	faculties, err := s.faculties.ListByTenant(ctx, tenantID, settings.LimitMaxFaculties)
	if err != nil {
		return solver.Input{}, wrap(err, "failed to load faculties")
	}
	timeSlots, err := s.timeSlots.ListByTenant(ctx, tenantID)
	if err != nil {
		return solver.Input{}, wrap(err, "failed to load time slots")
	}

	return solver.Input{
		Subjects:  subjects,
		Groups:    groups,
		Rooms:     rooms,
		Faculties: faculties,
		TimeSlots: timeSlots,
		Settings:  settings,
	}, nil
}

func (s *TimetableService) clampTimeLimit(seconds float64) float64 {
	max := s.config.MaxTimeLimit.Seconds()
	if max <= 0 {
		max = 60
	}
	if seconds <= 0 || seconds > max {
		return max
	}
	return seconds
}
