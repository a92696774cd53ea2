package models

import "time"

// Room is a physical escape room. Slots and schedules belong to it.
type Room struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `json:"is_active"`

	PhotoKey    string `gorm:"size:255" json:"photo_key"`
	PhotoAlt    string `gorm:"size:128" json:"photo_alt"`
	ThemeColour string `gorm:"size:6" json:"theme_colour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
