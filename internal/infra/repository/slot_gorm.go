package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type SlotGormRepository struct {
	slotQuery
	settingsQuery
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{
		slotQuery:     slotQuery{db: db},
		settingsQuery: settingsQuery{db: db},
		db:            db,
	}
}

func (r *SlotGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSlotGormRepository(tx))
	})
}

// --------------------------------------------------
// Room
// --------------------------------------------------

func (r *SlotGormRepository) LockRoom(
	ctx context.Context,
	roomID uint,
) error {

	var room models.Room
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&room, roomID).Error
}

func (r *SlotGormRepository) ListRoomProducts(
	ctx context.Context,
	roomID uint,
) ([]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Joins("JOIN product_groups ON product_groups.id = products.product_group_id").
		Where("product_groups.room_id = ? AND product_groups.kind = ?", roomID, models.ProductGroupAppointment).
		Order("products.base_price ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).
		Preload("AppointmentItem.Cart").
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) ListSameRoomOverlapping(
	ctx context.Context,
	roomID uint,
	b domain.Block,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND start < ? AND block_end > ?", roomID, b.End, b.Start).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) CreateSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *SlotGormRepository) UpdateSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

// DeleteSlot also drops a reservation still holding the slot. The carts
// referencing the slot are locked first so a checkout cannot complete one
// in between; a slot held by a completed cart is refused with ErrSlotBooked.
func (r *SlotGormRepository) DeleteSlot(
	ctx context.Context,
	id uint,
) error {
	db := r.db.WithContext(ctx)

	holders := r.db.Model(&models.CartItem{}).Select("cart_id").Where("slot_id = ?", id)

	var carts []models.Cart
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN (?)", holders).
		Find(&carts).Error; err != nil {
		return err
	}
	for _, c := range carts {
		if cart.Status(c.Status) == cart.StatusCompleted {
			return domain.ErrSlotBooked
		}
	}

	if err := db.Where("slot_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Slot{}, id).Error
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *SlotGormRepository) GetSchedule(
	ctx context.Context,
	id uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) SaveSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *SlotGormRepository) DeleteSchedule(
	ctx context.Context,
	id uint,
) error {
	db := r.db.WithContext(ctx)

	// booked slots outlive their schedule
	if err := db.Model(&models.Slot{}).
		Where("schedule_id = ?", id).
		Update("schedule_id", nil).Error; err != nil {
		return err
	}
	return db.Delete(&models.Schedule{}, id).Error
}

func (r *SlotGormRepository) ListScheduleSlots(
	ctx context.Context,
	scheduleID uint,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("AppointmentItem.Cart").
		Where("schedule_id = ?", scheduleID).
		Order("start ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) ListBetween(
	ctx context.Context,
	from, to time.Time,
) ([]models.Slot, error) {
	return r.slotQuery.ListBetween(ctx, from, to)
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
