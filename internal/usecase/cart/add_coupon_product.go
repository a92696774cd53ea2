package cart

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// AddCouponProduct puts a gift voucher product into a cart.
type AddCouponProduct struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddCouponProduct(repo domain.Repository, audit *audit.Dispatcher) *AddCouponProduct {
	return &AddCouponProduct{repo: repo, audit: audit}
}

func (uc *AddCouponProduct) Execute(ctx context.Context, token string, productID uint) (*models.CartItem, error) {
	c, err := uc.repo.GetCartByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, ErrCartNotFound, "load cart")
	}
	if err := domain.CanModify(domain.Status(c.Status)); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, "load product")
	}
	if !p.IsPurchasable || p.ProductGroup.Kind != models.ProductGroupCoupon {
		return nil, ErrProductNotFound
	}

	item := &models.CartItem{
		CartID:    c.ID,
		ProductID: p.ID,
		Kind:      models.CartItemCoupon,
	}
	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(err, "create item")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "cart_coupon_product_added",
		Entity:   "cart_item",
		EntityID: &item.ID,
	})
	return item, nil
}
