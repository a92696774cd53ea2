package slot

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// State is the derived public state of a slot. It is never persisted.
type State string

const (
	StateUnavailable State = "unavailable"
	StateHidden      State = "hidden"
	StateFree        State = "free"
)

// Availability evaluates the booking rules for slots against one settings
// snapshot and one clock reading. Build a new one per request.
type Availability struct {
	rel      *Relatives
	settings models.AppointmentsSettings
	setAside time.Duration
	now      time.Time
	loc      *time.Location
}

func NewAvailability(
	q Query,
	settings models.AppointmentsSettings,
	shop models.ShopSettings,
	now time.Time,
) *Availability {
	loc := now.Location()
	return &Availability{
		rel:      NewRelatives(q, settings, loc),
		settings: settings,
		setAside: cart.SetAsideDuration(shop),
		now:      now,
		loc:      loc,
	}
}

func (a *Availability) Relatives() *Relatives {
	return a.rel
}

// ===============================
// Booking status
// ===============================

// IsBooked reports whether the slot belongs to a completed cart.
func IsBooked(s *models.Slot) bool {
	item := s.AppointmentItem
	if item == nil || item.Cart == nil {
		return false
	}
	return cart.Status(item.Cart.Status) == cart.StatusCompleted
}

// IsReserved reports whether an open cart still holds the slot.
func (a *Availability) IsReserved(s *models.Slot) bool {
	item := s.AppointmentItem
	if item == nil || item.Cart == nil {
		return false
	}
	if cart.Status(item.Cart.Status) != cart.StatusOpen {
		return false
	}
	return !cart.IsSetAsideExpired(item, a.setAside, a.now)
}

// IsStartInFuture counts a slot starting in the current minute as future.
func (a *Availability) IsStartInFuture(s *models.Slot) bool {
	return !s.Start.Before(a.now.Truncate(time.Minute))
}

func (a *Availability) IsUnavailable(s *models.Slot) bool {
	return IsBooked(s) || !a.IsStartInFuture(s)
}

// IsAvailableToStaff is the condition for attaching a slot to a cart.
func (a *Availability) IsAvailableToStaff(s *models.Slot) bool {
	return !a.IsUnavailable(s) && !a.IsReserved(s)
}

func IsFree(s *models.Slot) bool {
	return s.IsEnabled && !IsBooked(s)
}

// ===============================
// Blocking rules
// ===============================

// BookingLimit is the last calendar date that may be booked.
func (a *Availability) BookingLimit() time.Time {
	byDays := timezone.DayStart(a.now, a.loc).AddDate(0, 0, a.settings.PreventBookingsAfterDays)
	byDate := timezone.DayStart(a.settings.PreventBookingsAfterDate, a.loc)
	if byDate.Before(byDays) {
		return byDate
	}
	return byDays
}

func (a *Availability) IsBlockedBySettings(s *models.Slot) bool {
	return timezone.DayStart(s.Start, a.loc).After(a.BookingLimit())
}

func (a *Availability) IsFutureOfBuffer(s *models.Slot) bool {
	return s.Start.After(a.now.Add(minutes(a.settings.BufferInMinutes)))
}

// IsBlockedByBuffer waives the buffer when a preceding or parallel slot is
// already booked.
func (a *Availability) IsBlockedByBuffer(ctx context.Context, s *models.Slot) (bool, error) {
	if a.IsFutureOfBuffer(s) {
		return false, nil
	}

	preceding, err := a.rel.Preceding(ctx, s)
	if err != nil {
		return false, err
	}
	if countBooked(preceding) > 0 {
		return false, nil
	}

	parallel, err := a.rel.Parallel(ctx, s)
	if err != nil {
		return false, err
	}
	return countBooked(parallel) == 0, nil
}

func (a *Availability) IsBlockedByBookedAdjacentSlots(ctx context.Context, s *models.Slot) (bool, error) {
	parallel, err := a.rel.Parallel(ctx, s)
	if err != nil {
		return false, err
	}
	if countBooked(parallel) < a.settings.BookedParallelSlotsBlockingCount {
		return false, nil
	}

	preceding, err := a.rel.Preceding(ctx, s)
	if err != nil {
		return false, err
	}
	if countBooked(preceding) >= a.settings.BookedAdjacentSlotsBlockingCount {
		return true, nil
	}

	following, err := a.rel.Following(ctx, s)
	if err != nil {
		return false, err
	}
	return countBooked(following) >= a.settings.BookedAdjacentSlotsBlockingCount, nil
}

// IsBlockedByBookedDistantSlots blocks a slot when the day already has a
// booking far away from it, unless a near slot is booked too.
func (a *Availability) IsBlockedByBookedDistantSlots(ctx context.Context, s *models.Slot) (bool, error) {
	distant, err := a.rel.Distant(ctx, s)
	if err != nil {
		return false, err
	}
	if countBooked(distant) == 0 {
		return false, nil
	}

	near, err := a.rel.Near(ctx, s)
	if err != nil {
		return false, err
	}
	return countBooked(near) == 0, nil
}

func (a *Availability) IsBlocked(ctx context.Context, s *models.Slot) (bool, error) {
	if !s.IsEnabled || a.IsBlockedBySettings(s) {
		return true, nil
	}

	rules := []func(context.Context, *models.Slot) (bool, error){
		a.IsBlockedByBuffer,
		a.IsBlockedByBookedAdjacentSlots,
		a.IsBlockedByBookedDistantSlots,
	}
	for _, rule := range rules {
		blocked, err := rule(ctx, s)
		if err != nil {
			return false, err
		}
		if blocked {
			return true, nil
		}
	}
	return false, nil
}

func (a *Availability) IsHidden(ctx context.Context, s *models.Slot) (bool, error) {
	if a.IsUnavailable(s) {
		return false, nil
	}
	return a.IsBlocked(ctx, s)
}

// Visible is the only availability flag the public calendar exposes.
func (a *Availability) Visible(ctx context.Context, s *models.Slot) (bool, error) {
	hidden, err := a.IsHidden(ctx, s)
	if err != nil {
		return false, err
	}
	return !hidden, nil
}

func (a *Availability) State(ctx context.Context, s *models.Slot) (State, error) {
	if a.IsUnavailable(s) {
		return StateUnavailable, nil
	}
	hidden, err := a.IsHidden(ctx, s)
	if err != nil {
		return "", err
	}
	if hidden {
		return StateHidden, nil
	}
	return StateFree, nil
}

// ===============================
// Incentives
// ===============================

// IncentiveDiscount rewards booking next to an existing booking. A booked
// parallel slot wins over a booked adjacent one.
func (a *Availability) IncentiveDiscount(ctx context.Context, s *models.Slot) (decimal.Decimal, error) {
	parallel, err := a.rel.Parallel(ctx, s)
	if err != nil {
		return decimal.Zero, err
	}
	if countBooked(parallel) > 0 {
		return a.settings.ParallelIncentiveDiscount, nil
	}

	adjacent, err := a.rel.Adjacent(ctx, s)
	if err != nil {
		return decimal.Zero, err
	}
	if countBooked(adjacent) > 0 {
		return a.settings.AdjacentIncentiveDiscount, nil
	}
	return decimal.Zero, nil
}

func countBooked(slots []models.Slot) int {
	n := 0
	for i := range slots {
		if IsBooked(&slots[i]) {
			n++
		}
	}
	return n
}
