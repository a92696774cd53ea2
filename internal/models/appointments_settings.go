package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsRowID is the primary key of every singleton settings row.
const SettingsRowID = 1

type AppointmentsSettings struct {
	ID uint `gorm:"primaryKey" json:"-"`

	PreventBookingsAfterDate time.Time `gorm:"not null" json:"prevent_bookings_after_date"`
	PreventBookingsAfterDays int       `gorm:"not null" json:"prevent_bookings_after_days"`
	BufferInMinutes          int       `gorm:"not null" json:"buffer_in_minutes"`

	ParallelSlotFrameInMinutes int `gorm:"not null" json:"parallel_slot_frame_in_minutes"`
	AdjacentSlotFrameInMinutes int `gorm:"not null" json:"adjacent_slot_frame_in_minutes"`

	BookedAdjacentSlotsBlockingCount int `gorm:"not null" json:"booked_adjacent_slots_blocking_count"`
	BookedParallelSlotsBlockingCount int `gorm:"not null" json:"booked_parallel_slots_blocking_count"`
	BookedDistantSlotsBlockMinutes   int `gorm:"not null" json:"booked_distant_slots_block_minutes"`

	AdjacentIncentiveDiscount decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"adjacent_incentive_discount"`
	ParallelIncentiveDiscount decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"parallel_incentive_discount"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultAppointmentsSettings is the row created when none exists yet.
func DefaultAppointmentsSettings(today time.Time) AppointmentsSettings {
	return AppointmentsSettings{
		ID:                               SettingsRowID,
		PreventBookingsAfterDate:         today.AddDate(0, 0, 90),
		PreventBookingsAfterDays:         90,
		BufferInMinutes:                  180,
		ParallelSlotFrameInMinutes:       15,
		AdjacentSlotFrameInMinutes:       15,
		BookedAdjacentSlotsBlockingCount: 2,
		BookedParallelSlotsBlockingCount: 1,
		BookedDistantSlotsBlockMinutes:   60,
		AdjacentIncentiveDiscount:        decimal.Zero,
		ParallelIncentiveDiscount:        decimal.Zero,
	}
}
