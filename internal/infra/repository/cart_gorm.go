package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// loadCart reads a cart with everything pricing needs: products with their
// groups, slots and coupons with their allow-lists.
func loadCart(db *gorm.DB, where string, args ...any) (*models.Cart, error) {
	var c models.Cart
	if err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product.ProductGroup").
		Preload("Items.Slot").
		Preload("Coupons", func(db *gorm.DB) *gorm.DB { return db.Order("cart_coupons.id ASC") }).
		Preload("Coupons.Coupon.Products").
		Where(where, args...).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

type CartGormRepository struct {
	slotQuery
	settingsQuery
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{
		slotQuery:     slotQuery{db: db},
		settingsQuery: settingsQuery{db: db},
		db:            db,
	}
}

func (r *CartGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewCartGormRepository(tx))
	})
}

func (r *CartGormRepository) LockSlot(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("AppointmentItem.Cart").
		First(&s, slotID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (r *CartGormRepository) CreateCart(
	ctx context.Context,
	c *models.Cart,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *CartGormRepository) GetCartByToken(
	ctx context.Context,
	token string,
) (*models.Cart, error) {
	return loadCart(r.db.WithContext(ctx), "token = ?", token)
}

func (r *CartGormRepository) UpdateCart(
	ctx context.Context,
	c *models.Cart,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *CartGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("ProductGroup").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CartGormRepository) CreateItem(
	ctx context.Context,
	item *models.CartItem,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *CartGormRepository) DeleteItem(
	ctx context.Context,
	cartID, itemID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartGormRepository) DeleteExpiredAppointmentItems(
	ctx context.Context,
	setAsideBefore time.Time,
) (int64, error) {

	openCarts := r.db.Model(&models.Cart{}).
		Select("id").
		Where("status = ?", domain.StatusOpen)

	res := r.db.WithContext(ctx).
		Where("kind = ? AND cart_id IN (?)", models.CartItemAppointment, openCarts).
		Where("(set_aside_at IS NULL OR set_aside_at <= ?)", setAsideBefore).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartGormRepository) ResetSetAside(
	ctx context.Context,
	cartID uint,
	now time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND kind = ?", cartID, models.CartItemAppointment).
		Update("set_aside_at", now).Error
}

// --------------------------------------------------
// Coupons
// --------------------------------------------------

func (r *CartGormRepository) GetCouponByCode(
	ctx context.Context,
	code string,
) (*models.Coupon, error) {
	return couponByCode(r.db.WithContext(ctx), code)
}

func (r *CartGormRepository) AttachCoupon(
	ctx context.Context,
	cc *models.CartCoupon,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(cc).Error
}

func (r *CartGormRepository) DetachCoupon(
	ctx context.Context,
	cartID, couponID uint,
) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND coupon_id = ?", cartID, couponID).
		Delete(&models.CartCoupon{}).Error
}

// Compile-time check
var _ domain.Repository = (*CartGormRepository)(nil)
