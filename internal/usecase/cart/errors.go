package cart

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
)

var (
	ErrCartNotFound    = httperr.ErrBusiness("cart_not_found")
	ErrItemNotFound    = httperr.ErrBusiness("cart_item_not_found")
	ErrProductNotFound = httperr.ErrBusiness("product_not_found")
	ErrWrongProduct    = httperr.ErrBusiness("product_not_for_slot")
)

// notFound maps a missing row to be and wraps anything else.
func notFound(err error, be error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return be
	}
	return pkgerrors.Wrap(err, what)
}
