package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// ===============================
// Cart Status
// ===============================

type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

func CanModify(s Status) error {
	if s != StatusOpen {
		return httperr.ErrBusiness("cart_not_open")
	}
	return nil
}

func CanComplete(s Status) error {
	switch s {
	case StatusCompleted:
		return httperr.ErrBusiness("cart_already_completed")
	case StatusCancelled:
		return httperr.ErrBusiness("cart_cancelled")
	}
	return nil
}

func CanCancel(s Status) error {
	if s == StatusCancelled {
		return httperr.ErrBusiness("cart_already_cancelled")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Complete(c *models.Cart) error {
	if err := CanComplete(Status(c.Status)); err != nil {
		return err
	}
	c.Status = string(StatusCompleted)
	return nil
}

func Cancel(c *models.Cart) error {
	if err := CanCancel(Status(c.Status)); err != nil {
		return err
	}
	c.Status = string(StatusCancelled)
	return nil
}

// ===============================
// Set-aside window
// ===============================

// SetAsideUntil is the moment an appointment item stops holding its slot.
// Items without a set-aside timestamp hold nothing.
func SetAsideUntil(item *models.CartItem, setAside time.Duration) (time.Time, bool) {
	if item == nil || item.SetAsideAt == nil {
		return time.Time{}, false
	}
	return item.SetAsideAt.Add(setAside), true
}

// IsSetAsideExpired reports whether an appointment item in an open cart no
// longer reserves its slot. Items of completed carts never expire.
func IsSetAsideExpired(item *models.CartItem, setAside time.Duration, now time.Time) bool {
	if item == nil || item.Kind != models.CartItemAppointment {
		return false
	}
	if item.Cart != nil && Status(item.Cart.Status) != StatusOpen {
		return false
	}
	until, ok := SetAsideUntil(item, setAside)
	if !ok {
		return true
	}
	return !now.Before(until)
}

// SetAsideDuration converts the shop setting into a duration.
func SetAsideDuration(shop models.ShopSettings) time.Duration {
	return time.Duration(shop.SlotSetAsideMinutes) * time.Minute
}

// TotalBasePrice sums the product base prices of all items, without any
// shipping add-on. Coupon minimum spend is checked against this.
func TotalBasePrice(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Product.BasePrice)
	}
	return total
}
