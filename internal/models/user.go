package models

import "time"

const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
	RoleClient = "client"
)

// User is either staff of a barbershop (owner/barber) or a client account.
// Clients have no BarbershopID.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	BarbershopID *uint       `json:"barbershop_id"`
	Barbershop   *Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleOwner || u.Role == RoleBarber
}
