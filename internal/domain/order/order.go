package order

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var (
	ErrOrderNotFound        = httperr.ErrBusiness("order_not_found")
	ErrOrderCancelled       = httperr.ErrBusiness("order_cancelled")
	ErrOrderNumberExhausted = httperr.ErrBusiness("order_number_exhausted")
	ErrInvalidOrderItem     = httperr.ErrBusiness("invalid_order_item")
)

const maxNumberAttempts = 100

// ===============================
// Prices
// ===============================

// NetPrice strips VAT from a gross price. vatFactor is a fraction, 0.19 for 19%.
func NetPrice(gross, vatFactor decimal.Decimal) decimal.Decimal {
	return gross.Div(decimal.NewFromInt(1).Add(vatFactor)).Round(2)
}

func NewItem(reference string, base, gross, vatFactor decimal.Decimal) models.OrderItem {
	return models.OrderItem{
		Reference:  reference,
		BasePrice:  base.Round(2),
		GrossPrice: gross.Round(2),
		VatFactor:  vatFactor,
		NetPrice:   NetPrice(gross, vatFactor),
	}
}

// Reprice refreshes the derived net price after an item was edited.
func Reprice(item *models.OrderItem) error {
	if item.GrossPrice.IsNegative() || item.BasePrice.IsNegative() || item.VatFactor.IsNegative() {
		return ErrInvalidOrderItem
	}
	item.NetPrice = NetPrice(item.GrossPrice, item.VatFactor)
	return nil
}

// RecalculateTotals sums the order from its items. Call it after every
// change to the item list.
func RecalculateTotals(o *models.Order) {
	base, gross, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range o.Items {
		base = base.Add(it.BasePrice)
		gross = gross.Add(it.GrossPrice)
		net = net.Add(it.NetPrice)
	}

	o.BaseTotal = base
	o.GrossTotal = gross
	o.NetTotal = net
	o.VatTotal = gross.Sub(net)
}

// DiscountTotal is what coupons and incentives took off the base prices.
func DiscountTotal(o *models.Order) decimal.Decimal {
	return o.BaseTotal.Sub(o.GrossTotal)
}

// ===============================
// Domain Actions
// ===============================

func Cancel(o *models.Order) error {
	if o.IsCancelled {
		return ErrOrderCancelled
	}
	o.IsCancelled = true
	return nil
}

// ===============================
// Order numbers
// ===============================

// NewNumber draws a random number from the configured range until exists
// reports one as unused. Both limits are inclusive.
func NewNumber(shop models.ShopSettings, exists func(n int) (bool, error)) (int, error) {
	lower, upper := shop.OrderNumberLowerLimit, shop.OrderNumberUpperLimit
	if upper < lower {
		return 0, ErrOrderNumberExhausted
	}

	for i := 0; i < maxNumberAttempts; i++ {
		n := lower + rand.IntN(upper-lower+1)
		taken, err := exists(n)
		if err != nil {
			return 0, err
		}
		if !taken {
			return n, nil
		}
	}
	return 0, ErrOrderNumberExhausted
}
