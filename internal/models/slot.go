package models

import "time"

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"not null;index" json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ScheduleID *uint     `gorm:"index" json:"schedule_id"`
	Schedule   *Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Start     time.Time `gorm:"not null;index" json:"start"`
	Duration  int       `gorm:"not null" json:"duration"`
	Buffer    int       `gorm:"not null" json:"buffer"`
	IsEnabled bool      `gorm:"not null" json:"is_enabled"`

	AppointmentEnd time.Time `gorm:"not null" json:"appointment_end"`
	BlockEnd       time.Time `gorm:"not null;index" json:"block_end"`

	// Set when a cart holds this slot. Nil means nobody reserved or booked it.
	AppointmentItem *CartItem `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
