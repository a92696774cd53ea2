package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// slotQuery answers the availability filter shapes in SQL. Every result
// carries the slot's appointment item and cart so booking status can be read
// without further queries.
type slotQuery struct {
	db *gorm.DB
}

func (q slotQuery) find(ctx context.Context, where string, args ...any) ([]models.Slot, error) {
	var slots []models.Slot
	if err := q.db.WithContext(ctx).
		Preload("AppointmentItem.Cart").
		Where(where, args...).
		Order("start ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (q slotQuery) BlockEndBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error) {
	return q.find(ctx, "block_end >= ? AND block_end <= ?", from, to)
}

func (q slotQuery) StartBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error) {
	return q.find(ctx, "start >= ? AND start <= ?", from, to)
}

func (q slotQuery) OnDay(ctx context.Context, day time.Time) ([]models.Slot, error) {
	from := timezone.DayStart(day, day.Location())
	return q.find(ctx, "start >= ? AND start < ?", from, from.AddDate(0, 0, 1))
}

func (q slotQuery) Touching(ctx context.Context, from, to time.Time) ([]models.Slot, error) {
	return q.find(ctx, "block_end >= ? AND start <= ?", from, to)
}

// ListBetween loads every slot starting in [from, to) for snapshot evaluation.
func (q slotQuery) ListBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error) {
	return q.find(ctx, "start >= ? AND start < ?", from, to)
}

var _ domain.Query = slotQuery{}

// --------------------------------------------------
// Settings
// --------------------------------------------------

type settingsQuery struct {
	db *gorm.DB
}

func (q settingsQuery) GetAppointmentsSettings(ctx context.Context) (*models.AppointmentsSettings, error) {
	var s models.AppointmentsSettings
	if err := q.db.WithContext(ctx).First(&s, models.SettingsRowID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (q settingsQuery) GetShopSettings(ctx context.Context) (*models.ShopSettings, error) {
	var s models.ShopSettings
	if err := q.db.WithContext(ctx).First(&s, models.SettingsRowID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
