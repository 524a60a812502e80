package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	CashIncome  = "income"
	CashExpense = "expense"
)

// CashEntry is one line of the barbershop's cash-flow ledger.
type CashEntry struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	UserID       *uint `json:"user_id"`

	// Preenchido quando a entrada foi gerada pela conclusão de um agendamento.
	AppointmentID *uint `gorm:"uniqueIndex" json:"appointment_id"`

	Type        string          `gorm:"size:10;not null" json:"type"`
	Category    string          `gorm:"size:50" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	OccurredOn  datatypes.Date  `gorm:"index;not null" json:"occurred_on"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
