package domain

import "github.com/shopspring/decimal"

// BudgetPeriod enumerates the supported budgeting intervals.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending for one category over a period. Amount is validated
// positive at creation.
type Budget struct {
	ID       string          `json:"id"`
	OwnerID  string          `json:"ownerId"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   BudgetPeriod    `json:"period"`
}
