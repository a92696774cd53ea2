package slot

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// Query is the read capability the availability rules need. Every method
// spans all rooms, returns slots ordered by start and carries each slot's
// appointment item together with its cart.
type Query interface {
	BlockEndBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	StartBetween(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	// OnDay returns slots starting on day's calendar date in day's location.
	OnDay(ctx context.Context, day time.Time) ([]models.Slot, error)
	// Touching returns slots with block_end >= from and start <= to.
	Touching(ctx context.Context, from, to time.Time) ([]models.Slot, error)
}

// Snapshot answers queries from a preloaded set of slots. It lets a whole
// calendar day be evaluated without a round trip per predicate.
type Snapshot struct {
	slots []models.Slot
}

func NewSnapshot(slots []models.Slot) *Snapshot {
	cp := make([]models.Slot, len(slots))
	copy(cp, slots)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Start.Before(cp[j].Start)
	})
	return &Snapshot{slots: cp}
}

func (s *Snapshot) filter(keep func(*models.Slot) bool) []models.Slot {
	var out []models.Slot
	for i := range s.slots {
		if keep(&s.slots[i]) {
			out = append(out, s.slots[i])
		}
	}
	return out
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (s *Snapshot) BlockEndBetween(_ context.Context, from, to time.Time) ([]models.Slot, error) {
	return s.filter(func(sl *models.Slot) bool { return within(sl.BlockEnd, from, to) }), nil
}

func (s *Snapshot) StartBetween(_ context.Context, from, to time.Time) ([]models.Slot, error) {
	return s.filter(func(sl *models.Slot) bool { return within(sl.Start, from, to) }), nil
}

func (s *Snapshot) OnDay(_ context.Context, day time.Time) ([]models.Slot, error) {
	loc := day.Location()
	return s.filter(func(sl *models.Slot) bool { return timezone.SameDate(sl.Start, day, loc) }), nil
}

func (s *Snapshot) Touching(_ context.Context, from, to time.Time) ([]models.Slot, error) {
	return s.filter(func(sl *models.Slot) bool {
		return !sl.BlockEnd.Before(from) && !sl.Start.After(to)
	}), nil
}

var _ Query = (*Snapshot)(nil)
