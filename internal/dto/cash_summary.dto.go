package dto

import "github.com/shopspring/decimal"

type CashSummaryDTO struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
