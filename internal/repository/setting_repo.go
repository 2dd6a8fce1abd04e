package repository

import (
	"context"
	"database/sql"

	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/models"
)

// settingRepo is the concrete implementation of SettingRepository
type settingRepo struct {
	db *database.DB
}

// NewSettingRepo creates a new site-settings repository
func NewSettingRepo(db *database.DB) SettingRepository {
	return &settingRepo{db: db}
}

// Get retrieves one settings document by key
func (r *settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	row := r.db.QueryRowContext(ctx, "SELECT key, value, updated_at FROM site_settings WHERE key = $1", key)

	var setting models.Setting
	err := row.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Put upserts one settings document
func (r *settingRepo) Put(ctx context.Context, setting *models.Setting) error {
	query := `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, setting.Key, setting.Value, setting.UpdatedAt)
	return err
}
