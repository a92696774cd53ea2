package models

import "time"

type Cart struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Token  string `gorm:"size:36;uniqueIndex;not null" json:"token"`
	Status string `gorm:"size:20;not null;index" json:"status"`

	Items   []CartItem   `json:"items"`
	Coupons []CartCoupon `json:"coupons"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItemKind string

const (
	CartItemAppointment CartItemKind = "appointment"
	CartItemCoupon      CartItemKind = "coupon"
)

type CartItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CartID uint  `gorm:"not null;index" json:"cart_id"`
	Cart   *Cart `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	Kind CartItemKind `gorm:"size:20;not null" json:"kind"`

	// At most one live item per slot.
	SlotID     *uint      `gorm:"uniqueIndex" json:"slot_id"`
	Slot       *Slot      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slot,omitempty"`
	SetAsideAt *time.Time `json:"set_aside_at"`

	CreatedAt time.Time `json:"created_at"`
}

type CartCoupon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CartID   uint   `gorm:"not null;index" json:"cart_id"`
	CouponID uint   `gorm:"not null;index" json:"coupon_id"`
	Coupon   Coupon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"coupon"`

	CreatedAt time.Time `json:"created_at"`
}
