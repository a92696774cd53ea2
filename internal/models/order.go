package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	OrderNumber int  `gorm:"uniqueIndex;not null" json:"order_number"`

	CartID uint `gorm:"uniqueIndex;not null" json:"cart_id"`
	Cart   Cart `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BillingName  string `gorm:"size:100" json:"billing_name"`
	BillingEmail string `gorm:"size:100" json:"billing_email"`

	IsCancelled bool `json:"is_cancelled"`

	BaseTotal  decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"base_total"`
	GrossTotal decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"gross_total"`
	NetTotal   decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"net_total"`
	VatTotal   decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"vat_total"`

	PaymentLink string `gorm:"size:255" json:"payment_link"`

	Items []OrderItem `json:"items"`

	CreatedAt time.Time `json:"order_placed"`
	UpdatedAt time.Time `json:"last_modified"`
}

type OrderItem struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrderID uint   `gorm:"not null;index" json:"order_id"`
	Order   *Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Reference  string          `gorm:"size:50;not null" json:"reference"`
	BasePrice  decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"base_price"`
	GrossPrice decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"gross_price"`
	VatFactor  decimal.Decimal `gorm:"type:numeric(3,2);not null" json:"vat_factor"`
	NetPrice   decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"net_price"`
}
