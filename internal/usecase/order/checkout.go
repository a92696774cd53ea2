package order

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	cartdomain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/order"
	"github.com/BruksfildServices01/escape-booking/internal/metrics"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
	"github.com/BruksfildServices01/escape-booking/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckoutInput struct {
	Token        string
	BillingName  string
	BillingEmail string
}

type CheckoutResult struct {
	Order    *models.Order   `json:"order"`
	Vouchers []models.Coupon `json:"vouchers"`
}

// ======================================================
// USE CASE
// ======================================================

// Checkout turns an open cart into an order. The cart is completed, which
// books its slots, and every purchased coupon product becomes a voucher.
type Checkout struct {
	repo     domain.Repository
	payments PaymentLinker
	audit    *audit.Dispatcher
}

func NewCheckout(
	repo domain.Repository,
	payments PaymentLinker,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:     repo,
		payments: payments,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if !validators.IsEmailSyntaxValid(in.BillingEmail) {
		return nil, ErrInvalidEmail
	}

	res := &CheckoutResult{}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		now := timezone.Now()

		shop, err := tx.GetShopSettings(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "shop settings")
		}

		// --------------------------------------------------
		// 1. Cart
		// --------------------------------------------------
		c, err := tx.GetCartByToken(ctx, in.Token)
		if err != nil {
			return notFound(err, ErrCartNotFound, "load cart")
		}
		if err := cartdomain.CanComplete(cartdomain.Status(c.Status)); err != nil {
			return err
		}
		if len(c.Items) == 0 {
			return ErrCartEmpty
		}

		setAside := cartdomain.SetAsideDuration(*shop)
		for i := range c.Items {
			it := &c.Items[i]
			it.Cart = c
			if cartdomain.IsSetAsideExpired(it, setAside, now) {
				return ErrCartItemExpired
			}
		}

		// --------------------------------------------------
		// 2. Prices
		// --------------------------------------------------
		coupons := make([]models.Coupon, 0, len(c.Coupons))
		couponIDs := make([]uint, 0, len(c.Coupons))
		for _, cc := range c.Coupons {
			coupons = append(coupons, cc.Coupon)
			couponIDs = append(couponIDs, cc.CouponID)
		}

		// usage may have changed since the coupons were attached
		locked, err := tx.LockCoupons(ctx, couponIDs)
		if err != nil {
			return pkgerrors.Wrap(err, "lock coupons")
		}
		for i := range locked {
			if err := coupon.CanRedeem(&locked[i], now); err != nil {
				log.Info().Str("coupon", locked[i].Code).Err(err).Msg("coupon rejected at checkout")
				return err
			}
		}

		prices := coupon.NewCalculator(timezone.Site()).Prices(c.Items, coupons)

		// --------------------------------------------------
		// 3. Order
		// --------------------------------------------------
		number, err := domain.NewNumber(*shop, func(n int) (bool, error) {
			return tx.OrderNumberExists(ctx, n)
		})
		if err != nil {
			return err
		}

		o := &models.Order{
			OrderNumber:  number,
			CartID:       c.ID,
			BillingName:  in.BillingName,
			BillingEmail: in.BillingEmail,
		}
		for i := range c.Items {
			it := &c.Items[i]
			o.Items = append(o.Items, domain.NewItem(
				itemReference(it),
				coupon.ItemBasePrice(it),
				prices[it.ID],
				it.Product.VatFactor,
			))
		}
		domain.RecalculateTotals(o)

		if err := tx.CreateOrder(ctx, o); err != nil {
			return pkgerrors.Wrap(err, "create order")
		}

		// --------------------------------------------------
		// 4. Cart state, coupon usage
		// --------------------------------------------------
		if err := cartdomain.Complete(c); err != nil {
			return err
		}
		if err := tx.UpdateCart(ctx, c); err != nil {
			return pkgerrors.Wrap(err, "complete cart")
		}
		counted, err := tx.IncrementCouponUse(ctx, couponIDs)
		if err != nil {
			return pkgerrors.Wrap(err, "count coupon use")
		}
		if counted != int64(len(couponIDs)) {
			return coupon.ErrCouponOverused
		}

		// --------------------------------------------------
		// 5. Vouchers
		// --------------------------------------------------
		for i := range c.Items {
			it := &c.Items[i]
			if it.Kind != models.CartItemCoupon {
				continue
			}

			v := coupon.GiftVoucher(it.Product, number, *shop, now)
			v.Code, err = coupon.UniqueCode(*shop, func(code string) (bool, error) {
				return tx.CouponCodeExists(ctx, code)
			})
			if err != nil {
				return err
			}
			if err := tx.CreateCoupon(ctx, &v); err != nil {
				return pkgerrors.Wrap(err, "create voucher")
			}
			res.Vouchers = append(res.Vouchers, v)
		}

		res.Order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	// --------------------------------------------------
	// 6. Payment link (best effort)
	// --------------------------------------------------
	if uc.payments != nil {
		link, err := uc.payments.CreateLink(ctx, res.Order)
		if err != nil {
			log.Error().Err(err).Int("order_number", res.Order.OrderNumber).Msg("payment link failed")
		} else {
			res.Order.PaymentLink = link
			if err := uc.repo.SaveOrder(ctx, res.Order); err != nil {
				log.Error().Err(err).Int("order_number", res.Order.OrderNumber).Msg("payment link not stored")
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "order_created",
		Entity:   "order",
		EntityID: &res.Order.ID,
		Metadata: map[string]any{"order_number": res.Order.OrderNumber, "gross_total": res.Order.GrossTotal},
	})

	return res, nil
}

func itemReference(it *models.CartItem) string {
	if it.Kind == models.CartItemAppointment && it.Slot != nil {
		return it.Product.Name + " " + it.Slot.Start.In(timezone.Site()).Format("2006-01-02 15:04")
	}
	return it.Product.Name
}
