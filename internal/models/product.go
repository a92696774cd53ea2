package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductGroupKind string

const (
	ProductGroupAppointment ProductGroupKind = "appointment"
	ProductGroupCoupon      ProductGroupKind = "coupon"
)

type ProductGroup struct {
	ID   uint             `gorm:"primaryKey" json:"id"`
	Name string           `gorm:"size:32;not null" json:"name"`
	Kind ProductGroupKind `gorm:"size:20;not null;index" json:"kind"`

	// Appointment groups are bound to the room they sell.
	RoomID *uint `gorm:"index" json:"room_id"`
	Room   *Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Coupon groups may add a shipping cost to every item.
	ShippingCost decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"shipping_cost"`

	Products []Product `json:"products,omitempty"`
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductGroupID uint         `gorm:"not null;index" json:"product_group_id"`
	ProductGroup   ProductGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name          string          `gorm:"size:32;not null" json:"name"`
	BasePrice     decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"base_price"`
	VatFactor     decimal.Decimal `gorm:"type:numeric(3,2);not null" json:"vat_factor"`
	IsPurchasable bool            `json:"is_purchasable"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
