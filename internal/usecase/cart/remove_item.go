package cart

import (
	"context"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
)

type RemoveItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveItem(repo domain.Repository, audit *audit.Dispatcher) *RemoveItem {
	return &RemoveItem{repo: repo, audit: audit}
}

func (uc *RemoveItem) Execute(ctx context.Context, token string, itemID uint) error {
	c, err := uc.repo.GetCartByToken(ctx, token)
	if err != nil {
		return notFound(err, ErrCartNotFound, "load cart")
	}
	if err := domain.CanModify(domain.Status(c.Status)); err != nil {
		return err
	}

	if err := uc.repo.DeleteItem(ctx, c.ID, itemID); err != nil {
		return notFound(err, ErrItemNotFound, "delete item")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "cart_item_removed",
		Entity:   "cart_item",
		EntityID: &itemID,
	})
	return nil
}
