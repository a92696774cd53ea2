package slot

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/lock"
	"github.com/BruksfildServices01/escape-booking/internal/metrics"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var ErrRoomNotFound = httperr.ErrBusiness("room_not_found")

// ======================================================
// USE CASE
// ======================================================

// SaveSlot stores a slot after checking it against every other slot of its
// room. The check and the write share one transaction holding a lock on the
// room row, so concurrent writers for the same room run one after another.
type SaveSlot struct {
	repo   domain.Repository
	locker lock.RoomLocker
	audit  *audit.Dispatcher
}

func NewSaveSlot(
	repo domain.Repository,
	locker lock.RoomLocker,
	audit *audit.Dispatcher,
) *SaveSlot {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &SaveSlot{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates the slot when its ID is zero and updates it otherwise.
// source labels conflict metrics ("manual", "schedule").
func (uc *SaveSlot) Execute(
	ctx context.Context,
	s *models.Slot,
	source string,
) error {

	if err := domain.Normalize(s); err != nil {
		return err
	}
	creating := s.ID == 0

	err := uc.InRoom(ctx, s.RoomID, func(tx domain.Repository) error {
		return place(ctx, tx, s, creating)
	})
	if err != nil {
		if httperr.IsBusiness(err, "slot_overlaps") || httperr.IsExclusionConflict(err) {
			rejected(s, source)
			if creating {
				s.ID = 0
			}
			return domain.ErrSlotOverlaps
		}
		return err
	}

	if creating {
		metrics.SlotsCreated.Inc()
	}

	action := "slot_updated"
	if creating {
		action = "slot_created"
	}
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "slot",
		EntityID: &s.ID,
		Metadata: map[string]any{"room_id": s.RoomID, "start": s.Start, "source": source},
	})

	return nil
}

// InRoom runs fn in one transaction while holding the room lock and the
// room row lock. Slots written through Place inside fn are checked against
// each other and against the rest of the room.
func (uc *SaveSlot) InRoom(
	ctx context.Context,
	roomID uint,
	fn func(tx domain.Repository) error,
) error {
	return uc.locker.WithRoom(ctx, roomID, func() error {
		return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
			if err := tx.LockRoom(ctx, roomID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return pkgerrors.Wrap(err, "lock room")
			}
			return fn(tx)
		})
	})
}

// Place stores a slot inside a transaction opened by InRoom. An overlap
// leaves the transaction usable; the caller decides whether to go on.
func (uc *SaveSlot) Place(
	ctx context.Context,
	tx domain.Repository,
	s *models.Slot,
	source string,
) error {

	if err := domain.Normalize(s); err != nil {
		return err
	}
	creating := s.ID == 0

	err := place(ctx, tx, s, creating)
	if httperr.IsBusiness(err, "slot_overlaps") {
		rejected(s, source)
	}
	return err
}

func place(ctx context.Context, tx domain.Repository, s *models.Slot, creating bool) error {
	if !creating {
		existing, err := tx.GetSlot(ctx, s.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSlotNotFound
			}
			return pkgerrors.Wrap(err, "load slot")
		}
		s.ScheduleID = existing.ScheduleID
		s.CreatedAt = existing.CreatedAt
	}

	others, err := tx.ListSameRoomOverlapping(ctx, s.RoomID, domain.BlockOf(s))
	if err != nil {
		return pkgerrors.Wrap(err, "load overlapping slots")
	}

	if err := domain.ValidatePlacement(s, others); err != nil {
		return err
	}

	if creating {
		return tx.CreateSlot(ctx, s)
	}
	return tx.UpdateSlot(ctx, s)
}

func rejected(s *models.Slot, source string) {
	metrics.SlotConflicts.WithLabelValues(source).Inc()
	log.Warn().
		Uint("room_id", s.RoomID).
		Time("start", s.Start).
		Time("block_end", s.BlockEnd).
		Str("source", source).
		Msg("slot overlaps with other slots")
}
