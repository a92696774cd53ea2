package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/settings"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type SettingsGormRepository struct {
	settingsQuery
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{settingsQuery: settingsQuery{db: db}, db: db}
}

func (r *SettingsGormRepository) SaveAppointmentsSettings(ctx context.Context, s *models.AppointmentsSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SettingsGormRepository) SaveShopSettings(ctx context.Context, s *models.ShopSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Compile-time check
var _ domain.Repository = (*SettingsGormRepository)(nil)
