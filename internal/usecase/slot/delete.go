package slot

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
)

// DeleteSlot removes a slot unless a completed cart booked it.
type DeleteSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSlot(repo domain.Repository, audit *audit.Dispatcher) *DeleteSlot {
	return &DeleteSlot{repo: repo, audit: audit}
}

func (uc *DeleteSlot) Execute(ctx context.Context, id uint) error {
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := tx.GetSlot(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSlotNotFound
			}
			return pkgerrors.Wrap(err, "load slot")
		}

		if domain.IsBooked(s) {
			log.Warn().Uint("slot_id", id).Msg("refusing to delete booked slot")
			return domain.ErrSlotBooked
		}

		return tx.DeleteSlot(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &id,
	})
	return nil
}
