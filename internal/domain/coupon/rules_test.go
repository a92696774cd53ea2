package coupon

import (
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func TestCanApply(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	fresh := func(id uint) models.Coupon {
		c := absolute(id, "5.00", true)
		c.UseLimit = 1
		c.Expiry = &future
		return c
	}

	c := fresh(1)
	if err := CanApply(&c, nil, now); err != nil {
		t.Fatalf("fresh coupon: %v", err)
	}

	if err := CanApply(&c, []models.Coupon{fresh(1)}, now); !httperr.IsBusiness(err, "coupon_already_applied") {
		t.Fatalf("already applied: got %v", err)
	}

	expired := fresh(2)
	expired.Expiry = &past
	if err := CanApply(&expired, nil, now); !httperr.IsBusiness(err, "coupon_expired") {
		t.Fatalf("expired: got %v", err)
	}

	used := fresh(3)
	used.UseCounter = 1
	if err := CanApply(&used, nil, now); !httperr.IsBusiness(err, "coupon_overused") {
		t.Fatalf("overused: got %v", err)
	}

	exclusive := fresh(4)
	exclusive.Combines = false
	if err := CanApply(&exclusive, []models.Coupon{fresh(5)}, now); !httperr.IsBusiness(err, "coupon_not_combinable") {
		t.Fatalf("exclusive onto applied: got %v", err)
	}
	if err := CanApply(&c, []models.Coupon{exclusive}, now); !httperr.IsBusiness(err, "coupon_not_combinable") {
		t.Fatalf("onto exclusive: got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	shop := models.DefaultShopSettings()

	c := models.Coupon{Code: " spring26 "}
	ApplyDefaults(&c, shop, now)

	if c.Code != "SPRING26" {
		t.Fatalf("code = %q", c.Code)
	}
	if c.DaysOfWeek != "0,1,2,3,4,5,6" || c.UseLimit != 1 {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Expiry == nil || !c.Expiry.Equal(now.AddDate(0, 0, 365)) {
		t.Fatalf("expiry = %v", c.Expiry)
	}
}

func TestValidate(t *testing.T) {
	c := percent(1, "120", true)
	c.UseLimit = 1
	if err := Validate(&c); !httperr.IsBusiness(err, "invalid_coupon") {
		t.Fatalf("percent over 100: got %v", err)
	}

	c = absolute(1, "0", true)
	c.UseLimit = 1
	if err := Validate(&c); !httperr.IsBusiness(err, "invalid_coupon") {
		t.Fatalf("zero value: got %v", err)
	}

	c = absolute(1, "5", true)
	c.UseLimit = 1
	c.DaysOfWeek = "0,1"
	if err := Validate(&c); err != nil {
		t.Fatalf("valid coupon: %v", err)
	}
}

func TestUniqueCode(t *testing.T) {
	shop := models.DefaultShopSettings()
	shop.CouponCodeCharacters = "abc"
	shop.DefaultCouponCodeLength = 6

	seen := 0
	code, err := UniqueCode(shop, func(code string) (bool, error) {
		seen++
		return seen < 3, nil
	})
	if err != nil {
		t.Fatalf("unique code: %v", err)
	}
	if seen != 3 {
		t.Fatalf("checked %d codes, want 3", seen)
	}
	if len(code) != 6 || strings.Trim(code, "ABC") != "" {
		t.Fatalf("code %q outside alphabet", code)
	}

	_, err = UniqueCode(shop, func(string) (bool, error) { return true, nil })
	if err == nil {
		t.Fatal("exhausted search returned a code")
	}
}

func TestGiftVoucher(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	v := GiftVoucher(models.Product{Name: "Voucher 50", BasePrice: dec("50.00")}, 123456, models.DefaultShopSettings(), now)

	if v.IsPercent || !v.ApplyToEntireCart || !v.Value.Equal(dec("50")) || v.UseLimit != 1 {
		t.Fatalf("voucher = %+v", v)
	}
	if v.Reference != "Voucher 50 #123456" {
		t.Fatalf("reference = %q", v.Reference)
	}
}
