package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/solver"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
)

type stubSettingRepo struct {
	values   map[string]string
	upserted []models.Setting
}

func (s *stubSettingRepo) MapForTenant(_ context.Context, _ string) (map[string]string, error) {
	return s.values, nil
}

func (s *stubSettingRepo) BulkUpsert(_ context.Context, settings []models.Setting) error {
	s.upserted = append(s.upserted, settings...)
	return nil
}

func TestSettingServiceEffectiveMergesDefaults(t *testing.T) {
	repo := &stubSettingRepo{values: map[string]string{
		solver.KeyMaxHoursPenalty:     "750",
		models.SettingLastSolverScore: "120",
	}}
	svc := NewSettingService(repo, nil, nil)

	values, err := svc.Effective(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "750", values[solver.KeyMaxHoursPenalty])
	assert.Equal(t, "120", values[models.SettingLastSolverScore])
	// Untouched tunables surface their defaults.
	assert.Equal(t, "100", values[solver.KeyConsecutiveLabsWeight])
	assert.Equal(t, "false", values[solver.KeyLecturesInLabs])
}

func TestSettingServiceUpdate(t *testing.T) {
	repo := &stubSettingRepo{}
	svc := NewSettingService(repo, nil, nil)

	err := svc.Update(context.Background(), "u1", dto.UpdateSettingsRequest{
		Settings: []dto.SettingItem{
			{Key: solver.KeyMaxHoursPenalty, Value: "600"},
			{Key: solver.KeyLecturesInLabs, Value: "true"},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, "u1", repo.upserted[0].TenantID)
}

func TestSettingServiceUpdateRejectsUnknownKey(t *testing.T) {
	repo := &stubSettingRepo{}
	svc := NewSettingService(repo, nil, nil)

	err := svc.Update(context.Background(), "u1", dto.UpdateSettingsRequest{
		Settings: []dto.SettingItem{{Key: "DROP_TABLES", Value: "1"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.upserted)
}

func TestSettingServiceUpdateRejectsScoreWrites(t *testing.T) {
	repo := &stubSettingRepo{}
	svc := NewSettingService(repo, nil, nil)

	err := svc.Update(context.Background(), "u1", dto.UpdateSettingsRequest{
		Settings: []dto.SettingItem{{Key: models.SettingLastSolverScore, Value: "0"}},
	})
	require.Error(t, err)
	assert.Empty(t, repo.upserted)
}

func TestSettingServiceUpdateRejectsEmptyPayload(t *testing.T) {
	svc := NewSettingService(&stubSettingRepo{}, nil, nil)

	err := svc.Update(context.Background(), "u1", dto.UpdateSettingsRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
