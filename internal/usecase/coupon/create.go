package coupon

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

var ErrCodeTaken = httperr.ErrBusiness("coupon_code_taken")

// CreateCoupon stores a staff-made coupon. A blank code is generated from
// the shop's code alphabet.
type CreateCoupon struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCoupon(repo domain.Repository, audit *audit.Dispatcher) *CreateCoupon {
	return &CreateCoupon{repo: repo, audit: audit}
}

func (uc *CreateCoupon) Execute(ctx context.Context, c *models.Coupon, userID *uint) error {
	shop, err := uc.repo.GetShopSettings(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "shop settings")
	}

	domain.ApplyDefaults(c, *shop, timezone.Now())
	if err := domain.Validate(c); err != nil {
		return err
	}

	exists := func(code string) (bool, error) {
		return uc.repo.CodeExists(ctx, code)
	}

	if c.Code == "" {
		if c.Code, err = domain.UniqueCode(*shop, exists); err != nil {
			return err
		}
	} else {
		taken, err := exists(c.Code)
		if err != nil {
			return pkgerrors.Wrap(err, "check code")
		}
		if taken {
			return ErrCodeTaken
		}
	}

	if err := uc.repo.CreateCoupon(ctx, c); err != nil {
		if httperr.IsUniqueViolation(err) {
			return ErrCodeTaken
		}
		return pkgerrors.Wrap(err, "create coupon")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "coupon_created",
		Entity:   "coupon",
		EntityID: &c.ID,
	})
	return nil
}

type ListCoupons struct {
	repo domain.Repository
}

func NewListCoupons(repo domain.Repository) *ListCoupons {
	return &ListCoupons{repo: repo}
}

func (uc *ListCoupons) Execute(ctx context.Context) ([]models.Coupon, error) {
	return uc.repo.ListCoupons(ctx)
}
