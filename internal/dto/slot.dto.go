package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PublicSlotDTO is what customers see in the day calendar.
type PublicSlotDTO struct {
	ID                uint             `json:"id"`
	RoomID            uint             `json:"room_id"`
	Start             time.Time        `json:"start"`
	AppointmentEnd    time.Time        `json:"appointment_end"`
	Visible           bool             `json:"visible"`
	Available         bool             `json:"available"`
	FromPrice         *decimal.Decimal `json:"from_price"`
	IncentiveDiscount decimal.Decimal  `json:"incentive_discount"`
}

type StaffSlotDTO struct {
	PublicSlotDTO
	ScheduleID *uint     `json:"schedule_id"`
	BlockEnd   time.Time `json:"block_end"`
	IsEnabled  bool      `json:"is_enabled"`
	State      string    `json:"state"`
	Booked     bool      `json:"booked"`
	Reserved   bool      `json:"reserved"`
}

type SlotInput struct {
	RoomID    uint   `json:"room_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Duration  int    `json:"duration"`
	Buffer    *int   `json:"buffer"`
	IsEnabled *bool  `json:"is_enabled"`
}

type ScheduleInput struct {
	RoomID          uint   `json:"room_id" binding:"required"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	DaysOfWeek      string `json:"days_of_week" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	BufferMinutes   *int   `json:"buffer_minutes"`
	RepeatTimes     int    `json:"repeat_times"`
}
