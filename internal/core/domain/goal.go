package domain

import "github.com/shopspring/decimal"

// Goal is a savings target. TargetAmount is validated positive and
// CurrentAmount non-negative at creation.
type Goal struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"` // ISO date, YYYY-MM-DD
}
