package schedule

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/metrics"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
	slotuc "github.com/BruksfildServices01/escape-booking/internal/usecase/slot"
)

// ======================================================
// OUTPUT
// ======================================================

type Result struct {
	Schedule *models.Schedule `json:"schedule"`
	Created  int              `json:"created"`
	Skipped  int              `json:"skipped"`
	Removed  int              `json:"removed"`
}

// ======================================================
// USE CASE
// ======================================================

// SaveSchedule stores a rule and regenerates its slots in one transaction
// under the room lock. Slots the old rule generated are removed first
// unless they are booked. A candidate that overlaps an existing slot is
// skipped; any other failure rolls the whole run back, rule included.
type SaveSchedule struct {
	saveSlot *slotuc.SaveSlot
	audit    *audit.Dispatcher
}

func NewSaveSchedule(
	saveSlot *slotuc.SaveSlot,
	audit *audit.Dispatcher,
) *SaveSchedule {
	return &SaveSchedule{
		saveSlot: saveSlot,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SaveSchedule) Execute(
	ctx context.Context,
	s *models.Schedule,
) (*Result, error) {

	if err := domain.ValidateSchedule(s); err != nil {
		return nil, err
	}

	updating := s.ID != 0
	var res *Result

	err := uc.saveSlot.InRoom(ctx, s.RoomID, func(tx domain.Repository) error {
		res = &Result{Schedule: s}

		// --------------------------------------------------
		// 1. Rule
		// --------------------------------------------------
		if updating {
			if _, err := tx.GetSchedule(ctx, s.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrScheduleNotFound
				}
				return pkgerrors.Wrap(err, "load schedule")
			}
		}

		if err := tx.SaveSchedule(ctx, s); err != nil {
			return pkgerrors.Wrap(err, "save schedule")
		}

		// --------------------------------------------------
		// 2. Previously generated slots
		// --------------------------------------------------
		if updating {
			removed, err := removeUnbooked(ctx, tx, s.ID)
			if err != nil {
				return err
			}
			res.Removed = removed
		}

		// --------------------------------------------------
		// 3. Expansion
		// --------------------------------------------------
		candidates, err := domain.ExpandSchedule(s, timezone.Now())
		if err != nil {
			return err
		}

		for i := range candidates {
			c := &candidates[i]
			err := uc.saveSlot.Place(ctx, tx, c, "schedule")
			switch {
			case err == nil:
				res.Created++
			case httperr.IsBusiness(err, "slot_overlaps"):
				res.Skipped++
			default:
				return pkgerrors.Wrapf(err, "generate slot at %s", c.Start)
			}
		}
		return nil
	})
	if err != nil {
		if !updating {
			s.ID = 0
		}
		return nil, err
	}

	metrics.SlotsCreated.Add(float64(res.Created))

	log.Info().
		Uint("schedule_id", s.ID).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("removed", res.Removed).
		Msg("schedule slots generated")

	uc.audit.Dispatch(audit.Event{
		Action:   "schedule_saved",
		Entity:   "schedule",
		EntityID: &s.ID,
		Metadata: res,
	})

	return res, nil
}

// removeUnbooked deletes the schedule's slots that nobody booked.
func removeUnbooked(ctx context.Context, repo domain.Repository, scheduleID uint) (int, error) {
	slots, err := repo.ListScheduleSlots(ctx, scheduleID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "list schedule slots")
	}

	removed := 0
	for i := range slots {
		if domain.IsBooked(&slots[i]) {
			continue
		}
		err := repo.DeleteSlot(ctx, slots[i].ID)
		switch {
		case errors.Is(err, domain.ErrSlotBooked):
			// booked after the list was read
			continue
		case err != nil:
			return removed, pkgerrors.Wrap(err, "delete schedule slot")
		}
		removed++
	}
	return removed, nil
}
