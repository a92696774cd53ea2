package slot

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// LowestBasePrice is the "from" price of a slot: the cheapest product of
// the appointment groups bound to its room. ok is false when the room sells
// nothing.
func LowestBasePrice(products []models.Product) (price decimal.Decimal, ok bool) {
	for _, p := range products {
		if !ok || p.BasePrice.LessThan(price) {
			price = p.BasePrice
			ok = true
		}
	}
	return price, ok
}
