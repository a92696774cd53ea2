package coupon

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

var (
	ErrCouponNotFound       = httperr.ErrBusiness("coupon_not_found")
	ErrCouponAlreadyApplied = httperr.ErrBusiness("coupon_already_applied")
	ErrCouponExpired        = httperr.ErrBusiness("coupon_expired")
	ErrCouponOverused       = httperr.ErrBusiness("coupon_overused")
	ErrCouponNotCombinable  = httperr.ErrBusiness("coupon_not_combinable")
	ErrInvalidCoupon        = httperr.ErrBusiness("invalid_coupon")
)

// maxCodeAttempts bounds the search for an unused code.
const maxCodeAttempts = 20

// ===============================
// Validations
// ===============================

func IsExpired(c *models.Coupon, now time.Time) bool {
	return c.Expiry != nil && now.After(*c.Expiry)
}

func IsOverused(c *models.Coupon) bool {
	return c.UseCounter >= c.UseLimit
}

// CanRedeem checks a coupon that is about to be used by a checkout.
func CanRedeem(c *models.Coupon, now time.Time) error {
	if IsExpired(c, now) {
		return ErrCouponExpired
	}
	if IsOverused(c) {
		return ErrCouponOverused
	}
	return nil
}

// CanApply checks whether a coupon may be attached to a cart that already
// carries the given coupons.
func CanApply(c *models.Coupon, applied []models.Coupon, now time.Time) error {
	for _, a := range applied {
		if a.ID == c.ID {
			return ErrCouponAlreadyApplied
		}
	}
	if IsExpired(c, now) {
		return ErrCouponExpired
	}
	if IsOverused(c) {
		return ErrCouponOverused
	}
	if len(applied) > 0 {
		if !c.Combines {
			return ErrCouponNotCombinable
		}
		for _, a := range applied {
			if !a.Combines {
				return ErrCouponNotCombinable
			}
		}
	}
	return nil
}

func Validate(c *models.Coupon) error {
	if !c.Value.IsPositive() || c.MinimumSpend.IsNegative() || c.UseLimit < 1 {
		return ErrInvalidCoupon
	}
	if c.IsPercent && c.Value.GreaterThan(hundred) {
		return ErrInvalidCoupon
	}
	if c.DaysOfWeek != "" {
		if _, err := timezone.ParseWeekdays(c.DaysOfWeek); err != nil {
			return ErrInvalidCoupon
		}
	}
	return nil
}

// ===============================
// Defaults
// ===============================

// ApplyDefaults fills the fields a staff member may leave blank.
func ApplyDefaults(c *models.Coupon, shop models.ShopSettings, now time.Time) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.DaysOfWeek == "" {
		c.DaysOfWeek = timezone.AllWeekdays
	}
	if c.UseLimit == 0 {
		c.UseLimit = 1
	}
	if c.Expiry == nil {
		exp := DefaultExpiry(shop, now)
		c.Expiry = &exp
	}
}

func DefaultExpiry(shop models.ShopSettings, now time.Time) time.Time {
	return now.AddDate(0, 0, shop.DefaultCouponValidityInDays)
}

// GiftVoucher is the coupon issued for a purchased coupon product. It is
// worth the product's base price across the whole cart, once.
func GiftVoucher(product models.Product, orderNumber int, shop models.ShopSettings, now time.Time) models.Coupon {
	exp := DefaultExpiry(shop, now)
	return models.Coupon{
		Reference:         product.Name + " #" + strconv.Itoa(orderNumber),
		Value:             product.BasePrice,
		IsPercent:         false,
		ApplyToEntireCart: true,
		MinimumSpend:      decimal.Zero,
		Combines:          true,
		DaysOfWeek:        timezone.AllWeekdays,
		UseLimit:          1,
		Expiry:            &exp,
	}
}

// ===============================
// Codes
// ===============================

func RandomCode(alphabet string, length int) (string, error) {
	alphabet = strings.ToUpper(alphabet)
	if alphabet == "" || length <= 0 {
		return "", ErrInvalidCoupon
	}

	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "coupon code")
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// UniqueCode draws codes until exists reports one as unused.
func UniqueCode(shop models.ShopSettings, exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := RandomCode(shop.CouponCodeCharacters, shop.DefaultCouponCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("no unused coupon code found")
}
