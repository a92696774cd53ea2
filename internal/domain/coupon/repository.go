package coupon

import (
	"context"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type Repository interface {
	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateCoupon(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
}
