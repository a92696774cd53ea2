package cart

import (
	"context"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Slot queries (availability inside the transaction) --------
	BlockEndBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	StartBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	OnDay(ctx context.Context, day time.Time) ([]models.Slot, error)
	Touching(ctx context.Context, from, to time.Time) ([]models.Slot, error)

	// LockSlot loads a slot with a row lock and its current appointment item.
	LockSlot(ctx context.Context, slotID uint) (*models.Slot, error)

	// -------- Settings --------
	GetAppointmentsSettings(ctx context.Context) (*models.AppointmentsSettings, error)
	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)

	// -------- Cart --------
	CreateCart(ctx context.Context, c *models.Cart) error
	GetCartByToken(ctx context.Context, token string) (*models.Cart, error)
	UpdateCart(ctx context.Context, c *models.Cart) error

	// -------- Items --------
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID uint) error
	// DeleteExpiredAppointmentItems removes appointment items of open carts
	// set aside at or before the given moment.
	DeleteExpiredAppointmentItems(ctx context.Context, setAsideBefore time.Time) (int64, error)
	ResetSetAside(ctx context.Context, cartID uint, now time.Time) error

	// -------- Coupons --------
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	AttachCoupon(ctx context.Context, cc *models.CartCoupon) error
	DetachCoupon(ctx context.Context, cartID, couponID uint) error
}
