package order

import (
	"context"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)

	// -------- Cart --------
	GetCartByToken(ctx context.Context, token string) (*models.Cart, error)
	GetCart(ctx context.Context, id uint) (*models.Cart, error)
	UpdateCart(ctx context.Context, c *models.Cart) error
	// ReleaseCartSlots detaches the cart's appointment items from their slots.
	ReleaseCartSlots(ctx context.Context, cartID uint) error

	// -------- Order --------
	OrderNumberExists(ctx context.Context, n int) (bool, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error

	// -------- Items --------
	CreateItem(ctx context.Context, item *models.OrderItem) error
	SaveItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, orderID, itemID uint) error

	// -------- Coupons --------
	// LockCoupons reads the coupons with a row lock held until commit.
	LockCoupons(ctx context.Context, couponIDs []uint) ([]models.Coupon, error)
	// IncrementCouponUse counts one use of every coupon still below its
	// limit and returns how many were counted.
	IncrementCouponUse(ctx context.Context, couponIDs []uint) (int64, error)
	CouponCodeExists(ctx context.Context, code string) (bool, error)
	CreateCoupon(ctx context.Context, c *models.Coupon) error
}
