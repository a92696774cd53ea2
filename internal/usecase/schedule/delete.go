package schedule

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
)

// DeleteSchedule removes a rule and its unbooked slots. Booked slots stay,
// detached from the schedule.
type DeleteSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSchedule(repo domain.Repository, audit *audit.Dispatcher) *DeleteSchedule {
	return &DeleteSchedule{repo: repo, audit: audit}
}

func (uc *DeleteSchedule) Execute(ctx context.Context, id uint) error {
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetSchedule(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrScheduleNotFound
			}
			return pkgerrors.Wrap(err, "load schedule")
		}

		if _, err := removeUnbooked(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeleteSchedule(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "schedule_deleted",
		Entity:   "schedule",
		EntityID: &id,
	})
	return nil
}
