package cart

import (
	"context"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// ======================================================
// APPLY
// ======================================================

type ApplyCoupon struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApplyCoupon(repo domain.Repository, audit *audit.Dispatcher) *ApplyCoupon {
	return &ApplyCoupon{repo: repo, audit: audit}
}

func (uc *ApplyCoupon) Execute(ctx context.Context, token, code string) (*models.Coupon, error) {
	c, err := uc.repo.GetCartByToken(ctx, token)
	if err != nil {
		return nil, notFound(err, ErrCartNotFound, "load cart")
	}
	if err := domain.CanModify(domain.Status(c.Status)); err != nil {
		return nil, err
	}

	cp, err := uc.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, coupon.ErrCouponNotFound, "load coupon")
	}

	if err := coupon.CanApply(cp, couponsOf(c), timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.AttachCoupon(ctx, &models.CartCoupon{CartID: c.ID, CouponID: cp.ID}); err != nil {
		return nil, pkgerrors.Wrap(err, "attach coupon")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "cart_coupon_applied",
		Entity:   "coupon",
		EntityID: &cp.ID,
		Metadata: map[string]any{"cart_id": c.ID},
	})
	return cp, nil
}

// ======================================================
// REMOVE
// ======================================================

type RemoveCoupon struct {
	repo domain.Repository
}

func NewRemoveCoupon(repo domain.Repository) *RemoveCoupon {
	return &RemoveCoupon{repo: repo}
}

func (uc *RemoveCoupon) Execute(ctx context.Context, token, code string) error {
	c, err := uc.repo.GetCartByToken(ctx, token)
	if err != nil {
		return notFound(err, ErrCartNotFound, "load cart")
	}
	if err := domain.CanModify(domain.Status(c.Status)); err != nil {
		return err
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	for _, cp := range couponsOf(c) {
		if cp.Code == code {
			return uc.repo.DetachCoupon(ctx, c.ID, cp.ID)
		}
	}
	return coupon.ErrCouponNotFound
}
