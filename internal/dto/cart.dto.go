package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItemDTO struct {
	ID            uint            `json:"id"`
	Kind          string          `json:"kind"`
	ProductID     uint            `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SlotID        *uint           `json:"slot_id,omitempty"`
	SlotStart     *time.Time      `json:"slot_start,omitempty"`
	SetAsideUntil *time.Time      `json:"set_aside_until,omitempty"`
	BasePrice     decimal.Decimal `json:"base_price"`
	Price         decimal.Decimal `json:"price"`
}

type CartDTO struct {
	Token     string          `json:"token"`
	Status    string          `json:"status"`
	Items     []CartItemDTO   `json:"items"`
	Coupons   []string        `json:"coupons"`
	BaseTotal decimal.Decimal `json:"base_total"`
	Total     decimal.Decimal `json:"total"`
}

type AddAppointmentInput struct {
	SlotID    uint `json:"slot_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`
}

type AddCouponProductInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type ApplyCouponInput struct {
	Code string `json:"code" binding:"required"`
}

type CheckoutInput struct {
	BillingName  string `json:"billing_name" binding:"required"`
	BillingEmail string `json:"billing_email" binding:"required,email"`
}
