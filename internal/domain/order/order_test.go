package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetPrice(t *testing.T) {
	tests := []struct {
		gross, vat, want string
	}{
		{"119.00", "0.19", "100"},
		{"10.00", "0.19", "8.40"},
		{"6.40", "0.07", "5.98"},
		{"0", "0.19", "0"},
		{"12.00", "0", "12"},
	}

	for _, tt := range tests {
		if got := NetPrice(dec(tt.gross), dec(tt.vat)); !got.Equal(dec(tt.want)) {
			t.Fatalf("net(%s, %s) = %s want %s", tt.gross, tt.vat, got, tt.want)
		}
	}
}

func TestRecalculateTotals(t *testing.T) {
	o := &models.Order{Items: []models.OrderItem{
		NewItem("Room A", dec("119.00"), dec("119.00"), dec("0.19")),
		NewItem("Voucher", dec("13.00"), dec("10.00"), dec("0.19")),
	}}

	RecalculateTotals(o)

	if !o.BaseTotal.Equal(dec("132")) || !o.GrossTotal.Equal(dec("129")) {
		t.Fatalf("base %s gross %s", o.BaseTotal, o.GrossTotal)
	}
	if !o.NetTotal.Equal(dec("108.40")) || !o.VatTotal.Equal(dec("20.60")) {
		t.Fatalf("net %s vat %s", o.NetTotal, o.VatTotal)
	}
	if !DiscountTotal(o).Equal(dec("3")) {
		t.Fatalf("discount %s", DiscountTotal(o))
	}

	o.Items = o.Items[:1]
	RecalculateTotals(o)
	if !o.GrossTotal.Equal(dec("119")) {
		t.Fatalf("gross after delete %s", o.GrossTotal)
	}
}

func TestReprice(t *testing.T) {
	it := NewItem("Room A", dec("100"), dec("100"), dec("0.19"))
	it.GrossPrice = dec("59.50")
	if err := Reprice(&it); err != nil {
		t.Fatal(err)
	}
	if !it.NetPrice.Equal(dec("50")) {
		t.Fatalf("net %s", it.NetPrice)
	}

	it.GrossPrice = dec("-1")
	if err := Reprice(&it); !httperr.IsBusiness(err, "invalid_order_item") {
		t.Fatalf("negative gross: got %v", err)
	}
}

func TestCancel(t *testing.T) {
	o := &models.Order{}
	if err := Cancel(o); err != nil || !o.IsCancelled {
		t.Fatalf("cancel: %v", err)
	}
	if err := Cancel(o); !httperr.IsBusiness(err, "order_cancelled") {
		t.Fatalf("second cancel: got %v", err)
	}
}

func TestNewNumberStaysInRangeAndUnique(t *testing.T) {
	shop := models.ShopSettings{OrderNumberLowerLimit: 100, OrderNumberUpperLimit: 104}
	used := map[int]bool{}

	for i := 0; i < 5; i++ {
		n, err := NewNumber(shop, func(n int) (bool, error) { return used[n], nil })
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if n < 100 || n > 104 {
			t.Fatalf("number %d outside range", n)
		}
		if used[n] {
			t.Fatalf("duplicate number %d", n)
		}
		used[n] = true
	}

	_, err := NewNumber(shop, func(n int) (bool, error) { return used[n], nil })
	if !httperr.IsBusiness(err, "order_number_exhausted") {
		t.Fatalf("full range: got %v", err)
	}
}
