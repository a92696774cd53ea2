package cart

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	"github.com/BruksfildServices01/escape-booking/internal/dto"
	"github.com/BruksfildServices01/escape-booking/internal/metrics"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// purgeExpired drops appointment items whose set-aside window ran out so
// their slots are free again.
func purgeExpired(ctx context.Context, repo domain.Repository, shop *models.ShopSettings) error {
	cutoff := timezone.Now().Add(-domain.SetAsideDuration(*shop))
	n, err := repo.DeleteExpiredAppointmentItems(ctx, cutoff)
	if err != nil {
		return pkgerrors.Wrap(err, "purge expired items")
	}
	if n > 0 {
		metrics.CartItemsExpired.Add(float64(n))
	}
	return nil
}

func couponsOf(c *models.Cart) []models.Coupon {
	out := make([]models.Coupon, 0, len(c.Coupons))
	for _, cc := range c.Coupons {
		out = append(out, cc.Coupon)
	}
	return out
}

// Render prices every item of the cart and builds its view.
func Render(c *models.Cart, shop *models.ShopSettings) dto.CartDTO {
	calc := coupon.NewCalculator(timezone.Site())
	coupons := couponsOf(c)
	prices := calc.Prices(c.Items, coupons)
	setAside := domain.SetAsideDuration(*shop)

	view := dto.CartDTO{
		Token:     c.Token,
		Status:    c.Status,
		Items:     make([]dto.CartItemDTO, 0, len(c.Items)),
		Coupons:   make([]string, 0, len(coupons)),
		BaseTotal: decimal.Zero,
		Total:     decimal.Zero,
	}

	for i := range c.Items {
		it := &c.Items[i]
		base := coupon.ItemBasePrice(it)
		row := dto.CartItemDTO{
			ID:          it.ID,
			Kind:        string(it.Kind),
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			SlotID:      it.SlotID,
			BasePrice:   base,
			Price:       prices[it.ID],
		}
		if it.Slot != nil {
			start := it.Slot.Start
			row.SlotStart = &start
		}
		if until, ok := domain.SetAsideUntil(it, setAside); ok && it.Kind == models.CartItemAppointment {
			row.SetAsideUntil = &until
		}

		view.Items = append(view.Items, row)
		view.BaseTotal = view.BaseTotal.Add(base)
		view.Total = view.Total.Add(row.Price)
	}

	for _, cp := range coupons {
		view.Coupons = append(view.Coupons, cp.Code)
	}
	return view
}

// ======================================================
// GET
// ======================================================

type GetCart struct {
	repo domain.Repository
}

func NewGetCart(repo domain.Repository) *GetCart {
	return &GetCart{repo: repo}
}

func (uc *GetCart) Execute(ctx context.Context, token string) (*dto.CartDTO, error) {
	shop, err := uc.repo.GetShopSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "shop settings")
	}

	if err := purgeExpired(ctx, uc.repo, shop); err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCartByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, ErrCartNotFound, "load cart")
	}

	view := Render(c, shop)
	return &view, nil
}
