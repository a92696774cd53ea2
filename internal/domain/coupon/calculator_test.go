package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// appointmentItem is a 10.00 room booking on Monday 2 March 2026.
func appointmentItem(id uint, price string) models.CartItem {
	slot := &models.Slot{ID: id, Start: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)}
	return models.CartItem{
		ID:        id,
		ProductID: 100 + id,
		Kind:      models.CartItemAppointment,
		Product:   models.Product{ID: 100 + id, BasePrice: dec(price)},
		Slot:      slot,
	}
}

func couponItem(id uint, price, shipping string) models.CartItem {
	return models.CartItem{
		ID:        id,
		ProductID: 100 + id,
		Kind:      models.CartItemCoupon,
		Product: models.Product{
			ID:           100 + id,
			BasePrice:    dec(price),
			ProductGroup: models.ProductGroup{Kind: models.ProductGroupCoupon, ShippingCost: dec(shipping)},
		},
	}
}

func percent(id uint, value string, entireCart bool) models.Coupon {
	return models.Coupon{ID: id, Value: dec(value), IsPercent: true, ApplyToEntireCart: entireCart, Combines: true}
}

func absolute(id uint, value string, entireCart bool) models.Coupon {
	return models.Coupon{ID: id, Value: dec(value), ApplyToEntireCart: entireCart, Combines: true}
}

func assertPrice(t *testing.T, prices map[uint]decimal.Decimal, itemID uint, want string) {
	t.Helper()
	got, ok := prices[itemID]
	if !ok {
		t.Fatalf("item %d missing", itemID)
	}
	if !got.Equal(dec(want)) {
		t.Fatalf("item %d: got %s want %s", itemID, got.StringFixed(2), want)
	}
}

func TestPricesWithoutCoupons(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), couponItem(2, "5.00", "8.00")}

	prices := calc.Prices(items, nil)
	assertPrice(t, prices, 1, "10.00")
	assertPrice(t, prices, 2, "13.00")
}

func TestPercentSingleItem(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), couponItem(2, "5.00", "8.00")}

	prices := calc.Prices(items, []models.Coupon{percent(1, "20", false)})
	assertPrice(t, prices, 1, "8.00")
	assertPrice(t, prices, 2, "13.00")
}

func TestPercentEntireCart(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), couponItem(2, "5.00", "8.00")}

	prices := calc.Prices(items, []models.Coupon{percent(1, "20", true)})
	assertPrice(t, prices, 1, "8.00")
	assertPrice(t, prices, 2, "10.40")
}

func TestAbsoluteBeforePercent(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00")}

	// given in the "wrong" order on purpose
	coupons := []models.Coupon{percent(1, "20", false), absolute(2, "2.00", true)}

	price, ok := calc.Price(items, coupons, 1)
	if !ok {
		t.Fatal("item not priced")
	}
	if !price.Equal(dec("6.40")) {
		t.Fatalf("got %s want 6.40", price)
	}
}

func TestAbsoluteOverflow(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), appointmentItem(2, "8.00")}

	prices := calc.Prices(items, []models.Coupon{absolute(1, "15.00", true)})
	assertPrice(t, prices, 1, "0.00")
	assertPrice(t, prices, 2, "3.00")
}

func TestAbsoluteOverflowIntoShippedItem(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), couponItem(2, "0.00", "8.00")}

	prices := calc.Prices(items, []models.Coupon{absolute(1, "15.00", true)})
	assertPrice(t, prices, 1, "0.00")
	assertPrice(t, prices, 2, "3.00")
}

func TestAbsoluteSingleItemDoesNotOverflow(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), appointmentItem(2, "8.00")}

	prices := calc.Prices(items, []models.Coupon{absolute(1, "15.00", false)})
	assertPrice(t, prices, 1, "0.00")
	assertPrice(t, prices, 2, "8.00")
}

func TestMinimumSpendGate(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00")}

	cp := percent(1, "20", true)
	cp.MinimumSpend = dec("10.10")

	assertPrice(t, calc.Prices(items, []models.Coupon{cp}), 1, "10.00")

	cp.MinimumSpend = dec("10.00")
	assertPrice(t, calc.Prices(items, []models.Coupon{cp}), 1, "8.00")
}

func TestMinimumSpendIgnoresShipping(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{couponItem(1, "5.00", "8.00")}

	cp := absolute(1, "1.00", true)
	cp.MinimumSpend = dec("6.00")

	assertPrice(t, calc.Prices(items, []models.Coupon{cp}), 1, "13.00")
}

func TestMinimumSpendUsesUndiscountedTotal(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00")}

	first := absolute(1, "5.00", true)
	second := absolute(2, "1.00", true)
	second.MinimumSpend = dec("10.00")

	assertPrice(t, calc.Prices(items, []models.Coupon{first, second}), 1, "4.00")
}

func TestProductAllowList(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), appointmentItem(2, "20.00")}

	cp := percent(1, "50", false)
	cp.Products = []models.Product{{ID: 102}}

	prices := calc.Prices(items, []models.Coupon{cp})
	assertPrice(t, prices, 1, "10.00")
	assertPrice(t, prices, 2, "10.00")
}

func TestDaysOfWeek(t *testing.T) {
	calc := NewCalculator(time.UTC)
	items := []models.CartItem{appointmentItem(1, "10.00"), couponItem(2, "5.00", "0")}

	// slot is on a Monday; the coupon only covers weekends
	cp := absolute(1, "3.00", true)
	cp.DaysOfWeek = "5,6"

	prices := calc.Prices(items, []models.Coupon{cp})
	assertPrice(t, prices, 1, "10.00")
	assertPrice(t, prices, 2, "2.00")

	cp.DaysOfWeek = "0"
	prices = calc.Prices(items, []models.Coupon{cp})
	assertPrice(t, prices, 1, "7.00")
	assertPrice(t, prices, 2, "5.00")
}

func TestPriceUnknownItem(t *testing.T) {
	calc := NewCalculator(time.UTC)
	if _, ok := calc.Price([]models.CartItem{appointmentItem(1, "10.00")}, nil, 9); ok {
		t.Fatal("unknown item priced")
	}
}
