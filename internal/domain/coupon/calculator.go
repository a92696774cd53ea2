package coupon

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

var hundred = decimal.NewFromInt(100)

// ItemBasePrice is the undiscounted price of a cart item. Coupon products
// carry the shipping cost of their group on top.
func ItemBasePrice(item *models.CartItem) decimal.Decimal {
	price := item.Product.BasePrice
	if item.Kind == models.CartItemCoupon {
		price = price.Add(item.Product.ProductGroup.ShippingCost)
	}
	return price
}

// Calculator prices every item of one cart. Discounts interact across items,
// so the whole cart is always evaluated together.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{loc: loc}
}

// Prices returns the discounted price of every item keyed by item ID.
//
// Absolute coupons go first, percent coupons after; otherwise coupons and
// items keep their given order. A coupon is skipped entirely when the cart
// base total is below its minimum spend. Prices never drop below zero.
func (c *Calculator) Prices(items []models.CartItem, coupons []models.Coupon) map[uint]decimal.Decimal {
	prices := make([]decimal.Decimal, len(items))
	for i := range items {
		prices[i] = ItemBasePrice(&items[i])
	}

	ordered := make([]models.Coupon, len(coupons))
	copy(ordered, coupons)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[i].IsPercent && ordered[j].IsPercent
	})

	total := cart.TotalBasePrice(items)

	for k := range ordered {
		cp := &ordered[k]
		if total.LessThan(cp.MinimumSpend) {
			continue
		}

		if cp.IsPercent {
			c.applyPercent(cp, items, prices)
		} else {
			c.applyAbsolute(cp, items, prices)
		}
	}

	out := make(map[uint]decimal.Decimal, len(items))
	for i := range items {
		out[items[i].ID] = prices[i].Round(2)
	}
	return out
}

// Price returns the discounted price of a single item. ok is false when the
// item is not part of the cart.
func (c *Calculator) Price(items []models.CartItem, coupons []models.Coupon, itemID uint) (decimal.Decimal, bool) {
	p, ok := c.Prices(items, coupons)[itemID]
	return p, ok
}

func (c *Calculator) applyPercent(cp *models.Coupon, items []models.CartItem, prices []decimal.Decimal) {
	factor := hundred.Sub(cp.Value).Div(hundred)
	for i := range items {
		if !c.Applies(cp, &items[i]) {
			continue
		}
		prices[i] = floor(prices[i].Mul(factor))
		if !cp.ApplyToEntireCart {
			return
		}
	}
}

// applyAbsolute spends the coupon value item by item. Whatever an item could
// not absorb carries over to the next applicable item.
func (c *Calculator) applyAbsolute(cp *models.Coupon, items []models.CartItem, prices []decimal.Decimal) {
	remaining := cp.Value
	for i := range items {
		if !remaining.IsPositive() {
			return
		}
		if !c.Applies(cp, &items[i]) {
			continue
		}

		used := decimal.Min(prices[i], remaining)
		if used.IsNegative() {
			used = decimal.Zero
		}
		prices[i] = floor(prices[i].Sub(used))
		remaining = remaining.Sub(used)

		if !cp.ApplyToEntireCart {
			return
		}
	}
}

// Applies reports whether a coupon covers an item. An empty product list
// covers every product. Appointment items also need their slot's weekday to
// be one of the coupon's days.
func (c *Calculator) Applies(cp *models.Coupon, item *models.CartItem) bool {
	if len(cp.Products) > 0 {
		found := false
		for _, p := range cp.Products {
			if p.ID == item.ProductID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if item.Kind == models.CartItemAppointment && item.Slot != nil && cp.DaysOfWeek != "" {
		days, err := timezone.ParseWeekdays(cp.DaysOfWeek)
		if err != nil {
			return false
		}
		if !days[timezone.Weekday(item.Slot.Start.In(c.loc))] {
			return false
		}
	}

	return true
}

func floor(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
