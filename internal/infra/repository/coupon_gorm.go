package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func couponByCode(db *gorm.DB, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := db.
		Preload("Products").
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func couponCodeExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	if err := db.Model(&models.Coupon{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type CouponGormRepository struct {
	settingsQuery
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{settingsQuery: settingsQuery{db: db}, db: db}
}

func (r *CouponGormRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return couponCodeExists(r.db.WithContext(ctx), code)
}

// CreateCoupon stores the coupon and links its product allow-list. Products
// must already exist.
func (r *CouponGormRepository) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).
		Omit("Products.*").
		Create(c).Error
}

func (r *CouponGormRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return couponByCode(r.db.WithContext(ctx), code)
}

func (r *CouponGormRepository) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Compile-time check
var _ domain.Repository = (*CouponGormRepository)(nil)
