package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single signed money movement. Positive amounts are income,
// negative amounts are expenses. AccountID is a soft reference: it is not
// validated against account existence.
type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	AccountID   string          `json:"accountId"`
	Date        string          `json:"date"` // ISO date, YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Month returns the calendar year-month bucket ("YYYY-MM") of the
// transaction date.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
