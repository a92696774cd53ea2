package slot

import (
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var (
	ErrSlotOverlaps     = httperr.ErrBusiness("slot_overlaps")
	ErrSlotBooked       = httperr.ErrBusiness("slot_booked")
	ErrInvalidSlot      = httperr.ErrBusiness("invalid_slot")
	ErrSlotNotFound     = httperr.ErrBusiness("slot_not_found")
	ErrSlotUnavailable  = httperr.ErrBusiness("slot_unavailable")
	ErrInvalidSchedule  = httperr.ErrBusiness("invalid_schedule")
	ErrScheduleNotFound = httperr.ErrBusiness("schedule_not_found")
)

// Block is the half-open interval [Start, End) a slot occupies in its room,
// buffer included.
type Block struct {
	Start time.Time
	End   time.Time
}

func BlockOf(s *models.Slot) Block {
	return Block{Start: s.Start, End: s.BlockEnd}
}

// Overlaps reports whether two blocks share any instant. Touching blocks
// (a.End == b.Start) do not overlap.
func Overlaps(a, b Block) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Normalize truncates the start to the minute and derives both end times.
func Normalize(s *models.Slot) error {
	if s.Duration <= 0 || s.Buffer < 0 || s.Start.IsZero() {
		return ErrInvalidSlot
	}
	s.Start = s.Start.Truncate(time.Minute)
	s.AppointmentEnd = s.Start.Add(time.Duration(s.Duration) * time.Minute)
	s.BlockEnd = s.AppointmentEnd.Add(time.Duration(s.Buffer) * time.Minute)
	return nil
}

// ValidatePlacement checks a candidate against the other slots of its room.
// Rows with the candidate's own ID or from another room are ignored.
func ValidatePlacement(candidate *models.Slot, others []models.Slot) error {
	b := BlockOf(candidate)
	for i := range others {
		o := &others[i]
		if o.RoomID != candidate.RoomID {
			continue
		}
		if candidate.ID != 0 && o.ID == candidate.ID {
			continue
		}
		if Overlaps(b, BlockOf(o)) {
			return ErrSlotOverlaps
		}
	}
	return nil
}
