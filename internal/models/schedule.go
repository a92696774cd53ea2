package models

import "time"

// Schedule is a weekly recurrence rule that generates slots for a room.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"not null;index" json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// Comma separated weekdays, Monday=0 ... Sunday=6.
	DaysOfWeek string `gorm:"size:50;not null" json:"days_of_week"`
	StartTime  string `gorm:"size:5;not null" json:"start_time"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`
	BufferMinutes   int `gorm:"not null" json:"buffer_minutes"`
	RepeatTimes     int `gorm:"not null" json:"repeat_times"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
