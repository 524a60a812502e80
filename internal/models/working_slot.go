package models

import "time"

// WorkingSlot is a recurring weekly range ("HH:MM"-"HH:MM") in which a
// barber takes appointments. A weekday may have several slots.
type WorkingSlot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_working_slots_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"index:idx_working_slots_barber_weekday" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Active    bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
