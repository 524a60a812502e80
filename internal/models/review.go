package models

import "time"

type Review struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `json:"barber_id"`
	UserID       uint `gorm:"index" json:"user_id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
