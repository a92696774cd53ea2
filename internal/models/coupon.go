package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:50" json:"reference"`
	Code      string `gorm:"size:32;uniqueIndex;not null" json:"code"`

	Value             decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"value"`
	IsPercent         bool            `json:"is_percent"`
	ApplyToEntireCart bool            `json:"apply_to_entire_cart"`
	MinimumSpend      decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"minimum_spend"`
	Combines          bool            `json:"combines"`

	// Empty means the coupon applies to every product.
	Products []Product `gorm:"many2many:coupon_products;" json:"products"`

	// Comma separated weekdays, Monday=0 ... Sunday=6.
	DaysOfWeek string `gorm:"size:50;not null" json:"days_of_week"`

	UseCounter int        `gorm:"not null" json:"use_counter"`
	UseLimit   int        `gorm:"not null" json:"use_limit"`
	Expiry     *time.Time `json:"expiry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
