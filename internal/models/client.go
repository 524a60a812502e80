package models

import "time"

// Cliente da barbearia, identificado pelo telefone. UserID é preenchido
// quando o agendamento veio de uma conta de cliente.
type Client struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	UserID       *uint `gorm:"index" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
