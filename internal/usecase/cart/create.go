package cart

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type CreateCart struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCart(repo domain.Repository, audit *audit.Dispatcher) *CreateCart {
	return &CreateCart{repo: repo, audit: audit}
}

func (uc *CreateCart) Execute(ctx context.Context) (*models.Cart, error) {
	c := &models.Cart{
		Token:  uuid.NewString(),
		Status: string(domain.StatusOpen),
	}
	if err := uc.repo.CreateCart(ctx, c); err != nil {
		return nil, pkgerrors.Wrap(err, "create cart")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "cart_created",
		Entity:   "cart",
		EntityID: &c.ID,
	})
	return c, nil
}
