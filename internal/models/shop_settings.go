package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShopSettings struct {
	ID uint `gorm:"primaryKey" json:"-"`

	VatPercent decimal.Decimal `gorm:"type:numeric(4,2);not null" json:"vat_percent"`

	// Minutes an appointment stays reserved in an open cart.
	SlotSetAsideMinutes int `gorm:"not null" json:"slot_set_aside_minutes"`

	OrderNumberLowerLimit int `gorm:"not null" json:"order_number_lower_limit"`
	OrderNumberUpperLimit int `gorm:"not null" json:"order_number_upper_limit"`

	DefaultCouponCodeLength     int    `gorm:"not null" json:"default_coupon_code_length"`
	DefaultCouponValidityInDays int    `gorm:"not null" json:"default_coupon_validity_in_days"`
	CouponCodeCharacters        string `gorm:"size:64;not null" json:"coupon_code_characters"`

	UpdatedAt time.Time `json:"updated_at"`
}

func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		ID:                          SettingsRowID,
		VatPercent:                  decimal.NewFromInt(19),
		SlotSetAsideMinutes:         20,
		OrderNumberLowerLimit:       100000,
		OrderNumberUpperLimit:       999999,
		DefaultCouponCodeLength:     8,
		DefaultCouponValidityInDays: 365,
		CouponCodeCharacters:        "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
	}
}

func (s *ShopSettings) BeforeSave(tx *gorm.DB) error {
	s.ID = SettingsRowID
	s.CouponCodeCharacters = strings.ToUpper(s.CouponCodeCharacters)
	return nil
}

func (s *AppointmentsSettings) BeforeSave(tx *gorm.DB) error {
	s.ID = SettingsRowID
	return nil
}
