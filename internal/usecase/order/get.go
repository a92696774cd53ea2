package order

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/order"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(ctx context.Context, id uint) (*models.Order, error) {
	o, err := uc.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound, "load order")
	}
	return o, nil
}

func (uc *GetOrder) List(ctx context.Context, page, perPage int) ([]models.Order, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}

	orders, err := uc.repo.ListOrders(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list orders")
	}
	return orders, nil
}
