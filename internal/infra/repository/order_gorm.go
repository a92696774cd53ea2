package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/order"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type OrderGormRepository struct {
	settingsQuery
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{settingsQuery: settingsQuery{db: db}, db: db}
}

func (r *OrderGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOrderGormRepository(tx))
	})
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (r *OrderGormRepository) GetCartByToken(ctx context.Context, token string) (*models.Cart, error) {
	return loadCart(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "token = ?", token)
}

func (r *OrderGormRepository) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	return loadCart(r.db.WithContext(ctx), "id = ?", id)
}

func (r *OrderGormRepository) UpdateCart(ctx context.Context, c *models.Cart) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *OrderGormRepository) ReleaseCartSlots(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND slot_id IS NOT NULL", cartID).
		Update("slot_id", nil).Error
}

// --------------------------------------------------
// Order
// --------------------------------------------------

func (r *OrderGormRepository) OrderNumberExists(ctx context.Context, n int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number = ?", n).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateOrder inserts the order together with its items.
func (r *OrderGormRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit("Cart").Create(o).Error
}

func (r *OrderGormRepository) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) SaveOrder(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *OrderGormRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *OrderGormRepository) SaveItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *OrderGormRepository) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Delete(&models.OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Coupons
// --------------------------------------------------

func (r *OrderGormRepository) LockCoupons(ctx context.Context, couponIDs []uint) ([]models.Coupon, error) {
	if len(couponIDs) == 0 {
		return nil, nil
	}

	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", couponIDs).
		Order("id ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *OrderGormRepository) IncrementCouponUse(ctx context.Context, couponIDs []uint) (int64, error) {
	if len(couponIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id IN ? AND use_counter < use_limit", couponIDs).
		UpdateColumn("use_counter", gorm.Expr("use_counter + 1"))
	return res.RowsAffected, res.Error
}

func (r *OrderGormRepository) CouponCodeExists(ctx context.Context, code string) (bool, error) {
	return couponCodeExists(r.db.WithContext(ctx), code)
}

func (r *OrderGormRepository) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Omit("Products.*").Create(c).Error
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
