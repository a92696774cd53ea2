package slot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

// Monday 2 March 2026, 08:00 UTC.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func testSettings() models.AppointmentsSettings {
	return models.AppointmentsSettings{
		PreventBookingsAfterDate:         testNow.AddDate(0, 0, 30),
		PreventBookingsAfterDays:         90,
		BufferInMinutes:                  180,
		ParallelSlotFrameInMinutes:       15,
		AdjacentSlotFrameInMinutes:       15,
		BookedAdjacentSlotsBlockingCount: 2,
		BookedParallelSlotsBlockingCount: 1,
		BookedDistantSlotsBlockMinutes:   60,
		AdjacentIncentiveDiscount:        decimal.NewFromInt(2),
		ParallelIncentiveDiscount:        decimal.NewFromInt(5),
	}
}

func testShop() models.ShopSettings {
	return models.ShopSettings{SlotSetAsideMinutes: 20}
}

// newSlot builds an enabled 60+30 minute slot.
func newSlot(id, room uint, start time.Time) models.Slot {
	s := models.Slot{
		ID:        id,
		RoomID:    room,
		Start:     start,
		Duration:  60,
		Buffer:    30,
		IsEnabled: true,
	}
	_ = Normalize(&s)
	return s
}

func booked(s models.Slot) models.Slot {
	s.AppointmentItem = &models.CartItem{
		Kind: models.CartItemAppointment,
		Cart: &models.Cart{Status: "completed"},
	}
	return s
}

func reserved(s models.Slot, setAsideAt time.Time) models.Slot {
	s.AppointmentItem = &models.CartItem{
		Kind:       models.CartItemAppointment,
		Cart:       &models.Cart{Status: "open"},
		SetAsideAt: &setAsideAt,
	}
	return s
}

func availability(slots ...models.Slot) *Availability {
	return NewAvailability(NewSnapshot(slots), testSettings(), testShop(), testNow)
}

func ids(slots []models.Slot) map[uint]bool {
	out := make(map[uint]bool, len(slots))
	for _, s := range slots {
		out[s.ID] = true
	}
	return out
}
