package models

import (
	"time"

	"gorm.io/datatypes"
)

// BlockedDate removes a whole calendar day from a barber's agenda.
type BlockedDate struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	BarberID uint           `gorm:"uniqueIndex:ux_blocked_dates_barber_date" json:"barber_id"`
	Date     datatypes.Date `gorm:"uniqueIndex:ux_blocked_dates_barber_date;not null" json:"date"`
	Reason   string         `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
