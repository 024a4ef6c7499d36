package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/solver"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
)

type settingRepository interface {
	MapForTenant(ctx context.Context, tenantID string) (map[string]string, error)
	BulkUpsert(ctx context.Context, settings []models.Setting) error
}

// editableSettingKeys lists the keys a tenant may write. LAST_SOLVER_SCORE
// is maintained by the generator and is read-only here.
var editableSettingKeys = map[string]bool{
	solver.KeyConsecutiveLabsWeight:      true,
	solver.KeyMaxHoursPenalty:            true,
	solver.KeyConsecutivePenalty:         true,
	solver.KeySameDayMultiPenalty:        true,
	solver.KeyLecturesInLabs:             true,
	solver.KeyMaxConsecutiveLectures:     true,
	solver.KeySolverTimeLimit:            true,
	solver.KeyFacultyMaxHoursEnabled:     true,
	solver.KeyFacultyConsecutiveEnabled:  true,
	solver.KeyLabConsecutiveEnabled:      true,
	solver.KeySubjectDistributionEnabled: true,
	solver.KeyLimitMaxSubjects:           true,
	solver.KeyLimitMaxGroups:             true,
	solver.KeyLimitMaxRooms:              true,
	solver.KeyLimitMaxFaculties:          true,
}

// SettingService exposes the tenant's solver tunables.
type SettingService struct {
	repo      settingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingService constructs a SettingService.
func NewSettingService(repo settingRepository, validate *validator.Validate, logger *zap.Logger) *SettingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{repo: repo, validator: validate, logger: logger}
}

// Effective returns the documented defaults overlaid with the tenant's
// stored values, so the client always sees every tunable.
func (s *SettingService) Effective(ctx context.Context, tenantID string) (map[string]string, error) {
	stored, err := s.repo.MapForTenant(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	values := defaultSettingValues()
	for key, value := range stored {
		values[key] = value
	}
	return values, nil
}

// Update writes the given settings. Unknown or read-only keys are rejected
// before anything is persisted.
func (s *SettingService) Update(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	settings := make([]models.Setting, 0, len(req.Settings))
	for _, item := range req.Settings {
		if !editableSettingKeys[item.Key] {
			return appErrors.Clone(appErrors.ErrValidation, "unknown or read-only setting key: "+item.Key)
		}
		settings = append(settings, models.Setting{
			TenantID: tenantID,
			Key:      item.Key,
			Value:    item.Value,
		})
	}
	if err := s.repo.BulkUpsert(ctx, settings); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store settings")
	}
	s.logger.Info("settings updated", zap.String("tenant_id", tenantID), zap.Int("count", len(settings)))
	return nil
}

func defaultSettingValues() map[string]string {
	d := solver.DefaultSettings()
	return map[string]string{
		solver.KeyConsecutiveLabsWeight:      strconv.Itoa(d.ConsecutiveLabsWeight),
		solver.KeyMaxHoursPenalty:            strconv.Itoa(d.MaxHoursPenalty),
		solver.KeyConsecutivePenalty:         strconv.Itoa(d.ConsecutivePenalty),
		solver.KeySameDayMultiPenalty:        strconv.Itoa(d.SameDayMultiPenalty),
		solver.KeyLecturesInLabs:             strconv.FormatBool(d.LecturesInLabs),
		solver.KeyMaxConsecutiveLectures:     strconv.Itoa(d.MaxConsecutiveLectures),
		solver.KeySolverTimeLimit:            strconv.FormatFloat(d.TimeLimitSeconds, 'f', -1, 64),
		solver.KeyFacultyMaxHoursEnabled:     strconv.FormatBool(d.FacultyMaxHoursEnabled),
		solver.KeyFacultyConsecutiveEnabled:  strconv.FormatBool(d.FacultyConsecutiveEnabled),
		solver.KeyLabConsecutiveEnabled:      strconv.FormatBool(d.LabConsecutiveEnabled),
		solver.KeySubjectDistributionEnabled: strconv.FormatBool(d.SubjectDistributionEnabled),
	}
}
