package slot

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func TestBookingStatus(t *testing.T) {
	free := newSlot(1, 1, at(12, 0))
	if IsBooked(&free) {
		t.Fatal("slot without item is booked")
	}

	b := booked(newSlot(2, 1, at(14, 0)))
	if !IsBooked(&b) || IsFree(&b) {
		t.Fatal("completed cart slot must be booked and not free")
	}

	a := availability()
	held := reserved(newSlot(3, 1, at(16, 0)), testNow.Add(-5*time.Minute))
	if IsBooked(&held) || !a.IsReserved(&held) {
		t.Fatal("open cart slot must be reserved, not booked")
	}
	if a.IsAvailableToStaff(&held) {
		t.Fatal("reserved slot is available to staff")
	}

	expired := reserved(newSlot(4, 1, at(16, 0)), testNow.Add(-21*time.Minute))
	if a.IsReserved(&expired) || !a.IsAvailableToStaff(&expired) {
		t.Fatal("expired set-aside must release the slot")
	}

	cancelled := newSlot(5, 1, at(18, 0))
	cancelled.AppointmentItem = &models.CartItem{Cart: &models.Cart{Status: "cancelled"}}
	if IsBooked(&cancelled) || a.IsReserved(&cancelled) {
		t.Fatal("cancelled cart holds its slot")
	}
}

func TestIsUnavailable(t *testing.T) {
	a := availability()

	past := newSlot(1, 1, at(7, 0))
	if !a.IsUnavailable(&past) {
		t.Fatal("past slot must be unavailable")
	}

	// the current minute still counts, seconds are ignored
	current := newSlot(2, 1, at(8, 0))
	if a.IsUnavailable(&current) {
		t.Fatal("slot starting this minute is unavailable")
	}
	late := NewAvailability(NewSnapshot(nil), testSettings(), testShop(), testNow.Add(30*time.Second))
	if !late.IsStartInFuture(&current) || late.IsUnavailable(&current) {
		t.Fatal("slot starting this minute is unavailable half a minute in")
	}
	gone := NewAvailability(NewSnapshot(nil), testSettings(), testShop(), testNow.Add(time.Minute))
	if !gone.IsUnavailable(&current) {
		t.Fatal("slot from the previous minute is still available")
	}

	future := newSlot(3, 1, at(8, 1))
	if a.IsUnavailable(&future) {
		t.Fatal("future slot is unavailable")
	}

	b := booked(newSlot(4, 1, at(20, 0)))
	if !a.IsUnavailable(&b) {
		t.Fatal("booked slot must be unavailable")
	}
}

func TestIsBlockedBySettings(t *testing.T) {
	a := availability()

	inside := newSlot(1, 1, testNow.AddDate(0, 0, 30))
	if a.IsBlockedBySettings(&inside) {
		t.Fatal("slot on the limit date is blocked")
	}

	after := newSlot(2, 1, testNow.AddDate(0, 0, 31))
	if !a.IsBlockedBySettings(&after) {
		t.Fatal("slot after the prevent date must be blocked")
	}

	settings := testSettings()
	settings.PreventBookingsAfterDays = 10
	byDays := NewAvailability(NewSnapshot(nil), settings, testShop(), testNow)
	if !byDays.IsBlockedBySettings(&after) {
		t.Fatal("day limit must win when it is earlier")
	}
	eleven := newSlot(3, 1, testNow.AddDate(0, 0, 11))
	if !byDays.IsBlockedBySettings(&eleven) {
		t.Fatal("slot after the day limit must be blocked")
	}
}

func TestIsBlockedByBuffer(t *testing.T) {
	ctx := context.Background()
	ref := newSlot(1, 1, at(10, 0)) // inside the 180 minute buffer

	a := availability(ref)
	if blocked, _ := a.IsBlockedByBuffer(ctx, &ref); !blocked {
		t.Fatal("slot inside buffer with no booked neighbour must be blocked")
	}

	unbookedNeighbour := newSlot(2, 2, at(8, 30)) // ends 10:00
	a = availability(ref, unbookedNeighbour)
	if blocked, _ := a.IsBlockedByBuffer(ctx, &ref); !blocked {
		t.Fatal("unbooked neighbour must not lift the buffer")
	}

	a = availability(ref, booked(unbookedNeighbour))
	if blocked, _ := a.IsBlockedByBuffer(ctx, &ref); blocked {
		t.Fatal("booked preceding slot must lift the buffer")
	}

	a = availability(ref, booked(newSlot(3, 2, at(10, 5))))
	if blocked, _ := a.IsBlockedByBuffer(ctx, &ref); blocked {
		t.Fatal("booked parallel slot must lift the buffer")
	}

	later := newSlot(4, 1, at(11, 1))
	a = availability(later)
	if blocked, _ := a.IsBlockedByBuffer(ctx, &later); blocked {
		t.Fatal("slot beyond the buffer is blocked")
	}

	edge := newSlot(5, 1, at(11, 0))
	a = availability(edge)
	if blocked, _ := a.IsBlockedByBuffer(ctx, &edge); !blocked {
		t.Fatal("slot exactly at now+buffer must still be blocked")
	}
}

func TestIsBlockedByBookedAdjacentSlots(t *testing.T) {
	ctx := context.Background()
	ref := newSlot(1, 1, at(12, 0))
	precedingA := booked(newSlot(2, 2, at(10, 30)))
	precedingB := booked(newSlot(3, 3, at(10, 30)))
	following := booked(newSlot(4, 2, at(13, 30)))
	parallel := booked(newSlot(5, 4, at(12, 0)))

	a := availability(ref, precedingA, precedingB, parallel)
	blocked, err := a.IsBlockedByBookedAdjacentSlots(ctx, &ref)
	if err != nil {
		t.Fatal(err)
	}
	if !blocked {
		t.Fatal("two preceding and one parallel booking must block")
	}

	a = availability(ref, precedingA, precedingB, following)
	if blocked, _ := a.IsBlockedByBookedAdjacentSlots(ctx, &ref); blocked {
		t.Fatal("without a parallel booking nothing is blocked")
	}

	a = availability(ref, precedingA, following, parallel)
	if blocked, _ := a.IsBlockedByBookedAdjacentSlots(ctx, &ref); blocked {
		t.Fatal("one preceding and one following do not reach the adjacent count")
	}

	followingB := booked(newSlot(6, 3, at(13, 40)))
	a = availability(ref, following, followingB, parallel)
	if blocked, _ := a.IsBlockedByBookedAdjacentSlots(ctx, &ref); !blocked {
		t.Fatal("two following and one parallel booking must block")
	}
}

func TestIsBlockedByBookedDistantSlots(t *testing.T) {
	ctx := context.Background()
	ref := newSlot(1, 1, at(12, 0))
	distant := booked(newSlot(2, 2, at(15, 0)))

	a := availability(ref, distant)
	blocked, err := a.IsBlockedByBookedDistantSlots(ctx, &ref)
	if err != nil {
		t.Fatal(err)
	}
	if !blocked {
		t.Fatal("booking three hours away must block")
	}

	near := booked(newSlot(3, 3, at(13, 30)))
	a = availability(ref, distant, near)
	if blocked, _ := a.IsBlockedByBookedDistantSlots(ctx, &ref); blocked {
		t.Fatal("a near booking must supersede the distant one")
	}

	otherDay := booked(newSlot(4, 2, at(15, 0).AddDate(0, 0, 1)))
	a = availability(ref, otherDay)
	if blocked, _ := a.IsBlockedByBookedDistantSlots(ctx, &ref); blocked {
		t.Fatal("bookings on another day never block")
	}
}

func TestHiddenAndVisible(t *testing.T) {
	ctx := context.Background()

	open := newSlot(1, 1, at(16, 0))
	disabled := newSlot(2, 1, at(18, 0))
	disabled.IsEnabled = false
	pastDisabled := newSlot(3, 2, at(6, 0))
	pastDisabled.IsEnabled = false

	a := availability(open, disabled, pastDisabled)

	cases := []struct {
		slot    models.Slot
		visible bool
		state   State
	}{
		{open, true, StateFree},
		{disabled, false, StateHidden},
		{pastDisabled, true, StateUnavailable},
	}

	for _, c := range cases {
		got, err := a.Visible(ctx, &c.slot)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.visible {
			t.Fatalf("slot %d: visible = %v", c.slot.ID, got)
		}
		state, err := a.State(ctx, &c.slot)
		if err != nil {
			t.Fatal(err)
		}
		if state != c.state {
			t.Fatalf("slot %d: state = %s want %s", c.slot.ID, state, c.state)
		}
	}

	if IsFree(&disabled) {
		t.Fatal("disabled slot is free")
	}
}

func TestIncentiveDiscount(t *testing.T) {
	ctx := context.Background()
	ref := newSlot(1, 1, at(16, 0))

	cases := []struct {
		name   string
		others []models.Slot
		want   string
	}{
		{"nothing booked", []models.Slot{newSlot(2, 2, at(16, 0))}, "0"},
		{"parallel booked", []models.Slot{booked(newSlot(2, 2, at(16, 10)))}, "5"},
		{"adjacent booked", []models.Slot{booked(newSlot(2, 2, at(14, 30)))}, "2"},
		{"both booked", []models.Slot{
			booked(newSlot(2, 2, at(14, 30))),
			booked(newSlot(3, 3, at(16, 0))),
		}, "5"},
	}

	for _, c := range cases {
		a := availability(append([]models.Slot{ref}, c.others...)...)
		got, err := a.IncentiveDiscount(ctx, &ref)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Fatalf("%s: got %s want %s", c.name, got, c.want)
		}
	}
}

func TestLowestBasePrice(t *testing.T) {
	if _, ok := LowestBasePrice(nil); ok {
		t.Fatal("room without products has a price")
	}

	products := []models.Product{
		{BasePrice: decimal.RequireFromString("89.00")},
		{BasePrice: decimal.RequireFromString("59.50")},
		{BasePrice: decimal.RequireFromString("120.00")},
	}
	got, ok := LowestBasePrice(products)
	if !ok || !got.Equal(decimal.RequireFromString("59.50")) {
		t.Fatalf("lowest = %s", got)
	}
}
