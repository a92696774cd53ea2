package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// Relatives derives the neighbour sets of a slot. All sets span every room
// and never contain the reference slot. Nothing is cached.
type Relatives struct {
	query    Query
	settings models.AppointmentsSettings
	loc      *time.Location
}

func NewRelatives(q Query, settings models.AppointmentsSettings, loc *time.Location) *Relatives {
	return &Relatives{query: q, settings: settings, loc: loc}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func excludeSelf(ref *models.Slot, slots []models.Slot) []models.Slot {
	out := slots[:0:0]
	for _, s := range slots {
		if s.ID != ref.ID {
			out = append(out, s)
		}
	}
	return out
}

// Preceding returns slots whose block end lies within the adjacent frame
// around the reference start, on both sides of it.
func (r *Relatives) Preceding(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	frame := minutes(r.settings.AdjacentSlotFrameInMinutes)
	slots, err := r.query.BlockEndBetween(ctx, ref.Start.Add(-frame), ref.Start.Add(frame))
	if err != nil {
		return nil, err
	}
	return excludeSelf(ref, slots), nil
}

// Following returns slots starting within the adjacent frame around the
// reference block end.
func (r *Relatives) Following(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	frame := minutes(r.settings.AdjacentSlotFrameInMinutes)
	slots, err := r.query.StartBetween(ctx, ref.BlockEnd.Add(-frame), ref.BlockEnd.Add(frame))
	if err != nil {
		return nil, err
	}
	return excludeSelf(ref, slots), nil
}

func (r *Relatives) Adjacent(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	preceding, err := r.Preceding(ctx, ref)
	if err != nil {
		return nil, err
	}
	following, err := r.Following(ctx, ref)
	if err != nil {
		return nil, err
	}
	return union(preceding, following), nil
}

func (r *Relatives) Parallel(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	frame := minutes(r.settings.ParallelSlotFrameInMinutes)
	slots, err := r.query.StartBetween(ctx, ref.Start.Add(-frame), ref.Start.Add(frame))
	if err != nil {
		return nil, err
	}
	return excludeSelf(ref, slots), nil
}

func (r *Relatives) SameDay(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	slots, err := r.query.OnDay(ctx, ref.Start.In(r.loc))
	if err != nil {
		return nil, err
	}
	return excludeSelf(ref, slots), nil
}

// Near returns slots touching the reference block widened by the distant
// frame on both sides.
func (r *Relatives) Near(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	frame := minutes(r.settings.BookedDistantSlotsBlockMinutes)
	slots, err := r.query.Touching(ctx, ref.Start.Add(-frame), ref.BlockEnd.Add(frame))
	if err != nil {
		return nil, err
	}
	return excludeSelf(ref, slots), nil
}

// Distant is the same-day set minus the near set.
func (r *Relatives) Distant(ctx context.Context, ref *models.Slot) ([]models.Slot, error) {
	sameDay, err := r.SameDay(ctx, ref)
	if err != nil {
		return nil, err
	}
	near, err := r.Near(ctx, ref)
	if err != nil {
		return nil, err
	}

	nearIDs := make(map[uint]bool, len(near))
	for _, s := range near {
		nearIDs[s.ID] = true
	}

	out := sameDay[:0:0]
	for _, s := range sameDay {
		if !nearIDs[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func union(a, b []models.Slot) []models.Slot {
	seen := make(map[uint]bool, len(a)+len(b))
	out := make([]models.Slot, 0, len(a)+len(b))
	for _, set := range [][]models.Slot{a, b} {
		for _, s := range set {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	return out
}
