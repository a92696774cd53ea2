package settings

import (
	"context"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var ErrInvalidSettings = httperr.ErrBusiness("invalid_settings")

type Repository interface {
	GetAppointmentsSettings(ctx context.Context) (*models.AppointmentsSettings, error)
	SaveAppointmentsSettings(ctx context.Context, s *models.AppointmentsSettings) error
	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)
	SaveShopSettings(ctx context.Context, s *models.ShopSettings) error
}

func ValidateAppointments(s *models.AppointmentsSettings) error {
	ints := []int{
		s.PreventBookingsAfterDays,
		s.BufferInMinutes,
		s.ParallelSlotFrameInMinutes,
		s.AdjacentSlotFrameInMinutes,
		s.BookedAdjacentSlotsBlockingCount,
		s.BookedParallelSlotsBlockingCount,
		s.BookedDistantSlotsBlockMinutes,
	}
	for _, v := range ints {
		if v < 0 {
			return ErrInvalidSettings
		}
	}
	if s.AdjacentIncentiveDiscount.IsNegative() || s.ParallelIncentiveDiscount.IsNegative() {
		return ErrInvalidSettings
	}
	if s.PreventBookingsAfterDate.IsZero() {
		return ErrInvalidSettings
	}
	return nil
}

func ValidateShop(s *models.ShopSettings) error {
	if s.SlotSetAsideMinutes < 0 || s.VatPercent.IsNegative() {
		return ErrInvalidSettings
	}
	if s.OrderNumberLowerLimit < 0 || s.OrderNumberUpperLimit < s.OrderNumberLowerLimit {
		return ErrInvalidSettings
	}
	if s.DefaultCouponCodeLength <= 0 || s.CouponCodeCharacters == "" || s.DefaultCouponValidityInDays < 0 {
		return ErrInvalidSettings
	}
	return nil
}
