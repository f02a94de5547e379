package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the supported account kinds.
type AccountType string

const (
	TypeChecking   AccountType = "Checking"
	TypeSavings    AccountType = "Savings"
	TypeCreditCard AccountType = "CreditCard"
	TypeInvestment AccountType = "Investment"
)

// IsValid reports whether t is one of the fixed account types.
func (t AccountType) IsValid() bool {
	switch t {
	case TypeChecking, TypeSavings, TypeCreditCard, TypeInvestment:
		return true
	}
	return false
}

// Account is a money account owned by exactly one user.
//
// Version is the optimistic-concurrency token: it starts at 1 and every
// successful update increments it by exactly 1. Deletion is logical only:
// Active flips to false and the record survives.
type Account struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Type      AccountType     `json:"type"`
	Active    bool            `json:"active"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
