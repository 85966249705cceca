package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/settings"
)

// GormSettingsRepository implements the settings Repository using GORM.
// The table holds at most one row; Get creates the default row on first
// access.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the settings row, creating the defaults if missing
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.CompanySettings, error) {
	var row settings.CompanySettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := settings.DefaultSettings()
		if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, row *settings.CompanySettings) error {
	return r.db.WithContext(ctx).Save(row).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
