package persistence

import (
	"context"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindAll returns every setting ordered by key
func (r *GormSettingsRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var rows []settings.Setting
	if err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByKey finds one setting
func (r *GormSettingsRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var s settings.Setting
	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&s).Error; err != nil {
		return nil, translateError(err, "Setting")
	}
	return &s, nil
}

// Upsert creates or replaces one setting
func (r *GormSettingsRepository) Upsert(ctx context.Context, s *settings.Setting) error {
	return upsertSetting(r.db.WithContext(ctx), s)
}

// UpsertAll creates or replaces several settings in one transaction
func (r *GormSettingsRepository) UpsertAll(ctx context.Context, rows []settings.Setting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := upsertSetting(tx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertSetting(db *gorm.DB, s *settings.Setting) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	assign := []string{"setting_value", "updated_at"}
	if s.Description != "" {
		assign = append(assign, "description")
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns(assign),
	}).Create(s).Error
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
