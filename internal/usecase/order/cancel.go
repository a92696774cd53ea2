package order

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	cartdomain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/order"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// CancelOrder cancels an order and its cart. The cart's slots become free.
type CancelOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelOrder(repo domain.Repository, audit *audit.Dispatcher) *CancelOrder {
	return &CancelOrder{repo: repo, audit: audit}
}

func (uc *CancelOrder) Execute(ctx context.Context, orderID uint, userID *uint) (*models.Order, error) {
	var o *models.Order

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		o, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return notFound(err, domain.ErrOrderNotFound, "load order")
		}
		if err := domain.Cancel(o); err != nil {
			return err
		}

		c, err := tx.GetCart(ctx, o.CartID)
		if err != nil {
			return notFound(err, ErrCartNotFound, "load cart")
		}
		if err := cartdomain.Cancel(c); err != nil {
			return err
		}

		if err := tx.UpdateCart(ctx, c); err != nil {
			return pkgerrors.Wrap(err, "cancel cart")
		}
		if err := tx.ReleaseCartSlots(ctx, c.ID); err != nil {
			return pkgerrors.Wrap(err, "release slots")
		}
		return tx.SaveOrder(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})
	return o, nil
}
