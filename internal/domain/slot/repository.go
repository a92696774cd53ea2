package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type Repository interface {
	Query

	// -------- Transaction --------
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Room --------
	// LockRoom takes a row lock on the room so slot writes serialize per room.
	LockRoom(ctx context.Context, roomID uint) error
	ListRoomProducts(ctx context.Context, roomID uint) ([]models.Product, error)

	// -------- Slot --------
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)
	ListSameRoomOverlapping(ctx context.Context, roomID uint, b Block) ([]models.Slot, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	CreateSlot(ctx context.Context, s *models.Slot) error
	UpdateSlot(ctx context.Context, s *models.Slot) error
	DeleteSlot(ctx context.Context, id uint) error

	// -------- Schedule --------
	GetSchedule(ctx context.Context, id uint) (*models.Schedule, error)
	SaveSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, id uint) error
	ListScheduleSlots(ctx context.Context, scheduleID uint) ([]models.Slot, error)

	// -------- Settings --------
	GetAppointmentsSettings(ctx context.Context) (*models.AppointmentsSettings, error)
	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)
}
