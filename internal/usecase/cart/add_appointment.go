package cart

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	slotdomain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AddAppointmentInput struct {
	Token     string
	SlotID    uint
	ProductID uint

	// Public callers may only take slots the calendar shows.
	RequireVisible bool
}

// ======================================================
// USE CASE
// ======================================================

// AddAppointment puts a slot into a cart. The slot row stays locked until
// the item is written, and the unique slot reference on cart items stops a
// second cart from holding it.
type AddAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddAppointment(repo domain.Repository, audit *audit.Dispatcher) *AddAppointment {
	return &AddAppointment{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *AddAppointment) Execute(ctx context.Context, in AddAppointmentInput) (*models.CartItem, error) {
	var item *models.CartItem

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		now := timezone.Now()

		// --------------------------------------------------
		// 1. Settings, expired reservations
		// --------------------------------------------------
		appt, err := tx.GetAppointmentsSettings(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "appointments settings")
		}
		shop, err := tx.GetShopSettings(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "shop settings")
		}
		if err := purgeExpired(ctx, tx, shop); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2. Cart
		// --------------------------------------------------
		c, err := tx.GetCartByToken(ctx, in.Token)
		if err != nil {
			return notFound(err, ErrCartNotFound, "load cart")
		}
		if err := domain.CanModify(domain.Status(c.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 3. Slot
		// --------------------------------------------------
		s, err := tx.LockSlot(ctx, in.SlotID)
		if err != nil {
			return notFound(err, slotdomain.ErrSlotNotFound, "lock slot")
		}

		avail := slotdomain.NewAvailability(tx, *appt, *shop, now)
		if !avail.IsAvailableToStaff(s) {
			return slotdomain.ErrSlotUnavailable
		}
		if s.AppointmentItem != nil {
			// an expired item of a non-open cart still holds the row
			return slotdomain.ErrSlotUnavailable
		}
		if in.RequireVisible {
			blocked, err := avail.IsBlocked(ctx, s)
			if err != nil {
				return pkgerrors.Wrap(err, "evaluate slot")
			}
			if blocked {
				return slotdomain.ErrSlotUnavailable
			}
		}

		// --------------------------------------------------
		// 4. Product
		// --------------------------------------------------
		p, err := tx.GetProduct(ctx, in.ProductID)
		if err != nil {
			return notFound(err, ErrProductNotFound, "load product")
		}
		g := p.ProductGroup
		if !p.IsPurchasable || g.Kind != models.ProductGroupAppointment || g.RoomID == nil || *g.RoomID != s.RoomID {
			return ErrWrongProduct
		}

		// --------------------------------------------------
		// 5. Item
		// --------------------------------------------------
		slotID := s.ID
		item = &models.CartItem{
			CartID:     c.ID,
			ProductID:  p.ID,
			Kind:       models.CartItemAppointment,
			SlotID:     &slotID,
			SetAsideAt: &now,
		}
		if err := tx.CreateItem(ctx, item); err != nil {
			if httperr.IsUniqueViolation(err) {
				return slotdomain.ErrSlotUnavailable
			}
			return pkgerrors.Wrap(err, "create item")
		}

		// the whole cart is held for another window
		return tx.ResetSetAside(ctx, c.ID, now)
	})
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			log.Info().Uint("slot_id", in.SlotID).Msg("slot no longer available for cart")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "cart_appointment_added",
		Entity:   "cart_item",
		EntityID: &item.ID,
		Metadata: map[string]any{"slot_id": in.SlotID},
	})
	return item, nil
}
