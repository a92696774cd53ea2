package order

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var (
	ErrCartNotFound    = httperr.ErrBusiness("cart_not_found")
	ErrCartEmpty       = httperr.ErrBusiness("cart_empty")
	ErrCartItemExpired = httperr.ErrBusiness("cart_item_expired")
	ErrItemNotFound    = httperr.ErrBusiness("order_item_not_found")
	ErrInvalidEmail    = httperr.ErrBusiness("invalid_billing_email")
)

// PaymentLinker creates a hosted checkout page for an order.
type PaymentLinker interface {
	CreateLink(ctx context.Context, o *models.Order) (string, error)
}

func notFound(err error, be error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return be
	}
	return pkgerrors.Wrap(err, what)
}
