package slot

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// Evaluation is one slot with everything the calendars show about it.
type Evaluation struct {
	Slot              models.Slot
	State             domain.State
	Visible           bool
	Booked            bool
	Reserved          bool
	FromPrice         *decimal.Decimal
	IncentiveDiscount decimal.Decimal
}

// Calendar evaluates whole days from one snapshot. Neighbour rules reach
// across midnight, so a day of margin is loaded on both sides.
type Calendar struct {
	repo domain.Repository
}

func NewCalendar(repo domain.Repository) *Calendar {
	return &Calendar{repo: repo}
}

type window struct {
	avail *domain.Availability
	slots []models.Slot
}

func (uc *Calendar) load(ctx context.Context, from, to time.Time) (*window, error) {
	appt, err := uc.repo.GetAppointmentsSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "appointments settings")
	}
	shop, err := uc.repo.GetShopSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "shop settings")
	}

	// Near and Preceding neighbours may cross midnight; Distant stays within the day.
	slots, err := uc.repo.ListBetween(ctx, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load slots")
	}

	now := timezone.Now()
	return &window{
		avail: domain.NewAvailability(domain.NewSnapshot(slots), *appt, *shop, now),
		slots: slots,
	}, nil
}

// Day evaluates every slot starting on the given date. roomID zero means
// all rooms.
func (uc *Calendar) Day(ctx context.Context, day time.Time, roomID uint) ([]Evaluation, error) {
	loc := timezone.Site()
	from := timezone.DayStart(day, loc)
	to := from.AddDate(0, 0, 1)

	w, err := uc.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	prices := map[uint]*decimal.Decimal{}
	fromPrice := func(room uint) (*decimal.Decimal, error) {
		if p, ok := prices[room]; ok {
			return p, nil
		}
		products, err := uc.repo.ListRoomProducts(ctx, room)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "room products")
		}
		var out *decimal.Decimal
		if p, ok := domain.LowestBasePrice(products); ok {
			out = &p
		}
		prices[room] = out
		return out, nil
	}

	var out []Evaluation
	for i := range w.slots {
		s := &w.slots[i]
		if s.Start.Before(from) || !s.Start.Before(to) {
			continue
		}
		if roomID != 0 && s.RoomID != roomID {
			continue
		}

		ev, err := evaluate(ctx, w.avail, s)
		if err != nil {
			return nil, err
		}
		if ev.FromPrice, err = fromPrice(s.RoomID); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// DaysAvailable lists the dates of a month holding at least one free slot.
func (uc *Calendar) DaysAvailable(ctx context.Context, year int, month time.Month) ([]time.Time, error) {
	loc := timezone.Site()
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	w, err := uc.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var days []time.Time
	seen := map[string]bool{}
	for i := range w.slots {
		s := &w.slots[i]
		if s.Start.Before(from) || !s.Start.Before(to) {
			continue
		}
		key := s.Start.In(loc).Format("2006-01-02")
		if seen[key] {
			continue
		}

		state, err := w.avail.State(ctx, s)
		if err != nil {
			return nil, err
		}
		if state == domain.StateFree && !w.avail.IsReserved(s) {
			seen[key] = true
			days = append(days, timezone.DayStart(s.Start, loc))
		}
	}
	return days, nil
}

func evaluate(ctx context.Context, a *domain.Availability, s *models.Slot) (Evaluation, error) {
	state, err := a.State(ctx, s)
	if err != nil {
		return Evaluation{}, err
	}
	incentive, err := a.IncentiveDiscount(ctx, s)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		Slot:              *s,
		State:             state,
		Visible:           state != domain.StateHidden,
		Booked:            domain.IsBooked(s),
		Reserved:          a.IsReserved(s),
		IncentiveDiscount: incentive,
	}, nil
}
