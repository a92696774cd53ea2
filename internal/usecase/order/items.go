package order

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/order"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type ItemInput struct {
	Reference  string
	BasePrice  decimal.Decimal
	GrossPrice decimal.Decimal
	VatFactor  decimal.Decimal
}

// EditItems changes the items of an order. Every change recomputes and
// stores the order totals in the same transaction.
type EditItems struct {
	repo domain.Repository
}

func NewEditItems(repo domain.Repository) *EditItems {
	return &EditItems{repo: repo}
}

func (uc *EditItems) Add(ctx context.Context, orderID uint, in ItemInput) (*models.Order, error) {
	return uc.edit(ctx, orderID, func(tx domain.Repository, o *models.Order) error {
		item := domain.NewItem(in.Reference, in.BasePrice, in.GrossPrice, in.VatFactor)
		item.OrderID = o.ID
		if err := domain.Reprice(&item); err != nil {
			return err
		}
		if err := tx.CreateItem(ctx, &item); err != nil {
			return pkgerrors.Wrap(err, "create item")
		}
		o.Items = append(o.Items, item)
		return nil
	})
}

func (uc *EditItems) Update(ctx context.Context, orderID, itemID uint, in ItemInput) (*models.Order, error) {
	return uc.edit(ctx, orderID, func(tx domain.Repository, o *models.Order) error {
		for i := range o.Items {
			it := &o.Items[i]
			if it.ID != itemID {
				continue
			}
			it.Reference = in.Reference
			it.BasePrice = in.BasePrice
			it.GrossPrice = in.GrossPrice
			it.VatFactor = in.VatFactor
			if err := domain.Reprice(it); err != nil {
				return err
			}
			return tx.SaveItem(ctx, it)
		}
		return ErrItemNotFound
	})
}

func (uc *EditItems) Delete(ctx context.Context, orderID, itemID uint) (*models.Order, error) {
	return uc.edit(ctx, orderID, func(tx domain.Repository, o *models.Order) error {
		if err := tx.DeleteItem(ctx, o.ID, itemID); err != nil {
			return notFound(err, ErrItemNotFound, "delete item")
		}
		kept := o.Items[:0]
		for _, it := range o.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		o.Items = kept
		return nil
	})
}

func (uc *EditItems) edit(
	ctx context.Context,
	orderID uint,
	change func(tx domain.Repository, o *models.Order) error,
) (*models.Order, error) {

	var o *models.Order
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		o, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return notFound(err, domain.ErrOrderNotFound, "load order")
		}
		if o.IsCancelled {
			return domain.ErrOrderCancelled
		}

		if err := change(tx, o); err != nil {
			return err
		}

		domain.RecalculateTotals(o)
		return tx.SaveOrder(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
