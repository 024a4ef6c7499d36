package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openroutine/timetable-api/internal/models"
)

// SettingRepository persists per-tenant solver settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository constructs the repository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// ListByTenant returns the tenant's settings ordered by key.
func (r *SettingRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Setting, error) {
	const query = `SELECT id, tenant_id, key, value, description, updated_at
        FROM settings WHERE tenant_id = $1 ORDER BY key ASC`
	var settings []models.Setting
	if err := r.db.SelectContext(ctx, &settings, query, tenantID); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// MapForTenant returns the tenant's settings as a key to value map.
func (r *SettingRepository) MapForTenant(ctx context.Context, tenantID string) (map[string]string, error) {
	settings, err := r.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return values, nil
}

// Upsert inserts or updates a single setting keyed by (tenant, key).
func (r *SettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	setting.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO settings (id, tenant_id, key, value, description, updated_at)
        VALUES (:id, :tenant_id, :key, :value, :description, :updated_at)
        ON CONFLICT (tenant_id, key)
        DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// BulkUpsert performs upserts within a transaction.
func (r *SettingRepository) BulkUpsert(ctx context.Context, settings []models.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	const query = `INSERT INTO settings (id, tenant_id, key, value, description, updated_at)
        VALUES (:id, :tenant_id, :key, :value, :description, :updated_at)
        ON CONFLICT (tenant_id, key)
        DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	for i := range settings {
		if settings[i].ID == "" {
			settings[i].ID = uuid.NewString()
		}
		settings[i].UpdatedAt = time.Now().UTC()
		if _, err := tx.NamedExecContext(ctx, query, settings[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bulk upsert setting: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings tx: %w", err)
	}
	return nil
}
