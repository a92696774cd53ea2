package coupon

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/dbtest"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/coupon"
	"github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

func TestCreateCoupon(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewCouponGormRepository(db)
	uc := NewCreateCoupon(repo, nil)

	room := dbtest.Room(t, db, "Vault")
	ticket := dbtest.AppointmentProduct(t, db, room, "90.00")

	generated := &models.Coupon{
		Value:     decimal.NewFromInt(15),
		IsPercent: true,
		Products:  []models.Product{{ID: ticket.ID}},
	}
	if err := uc.Execute(ctx, generated, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(generated.Code) != 8 || generated.UseLimit != 1 || generated.DaysOfWeek != timezone.AllWeekdays {
		t.Fatalf("defaults not applied: %+v", generated)
	}
	if generated.Expiry == nil || !generated.Expiry.After(timezone.Now().AddDate(0, 0, 364)) {
		t.Fatalf("expiry = %v", generated.Expiry)
	}

	stored, err := repo.GetByCode(ctx, generated.Code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Products) != 1 || stored.Products[0].ID != ticket.ID {
		t.Fatalf("allow-list = %+v", stored.Products)
	}

	dup := &models.Coupon{Code: " " + generated.Code + " ", Value: decimal.NewFromInt(5)}
	if err := uc.Execute(ctx, dup, nil); err != ErrCodeTaken {
		t.Fatalf("duplicate code: err = %v", err)
	}

	bad := &models.Coupon{Value: decimal.NewFromInt(120), IsPercent: true}
	if err := uc.Execute(ctx, bad, nil); err != domain.ErrInvalidCoupon {
		t.Fatalf("over 100%%: err = %v", err)
	}

	list, err := NewListCoupons(repo).Execute(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %d, err = %v", len(list), err)
	}
}
