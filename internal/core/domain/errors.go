package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ErrAccountNotFound covers absent, inactive, and not-owned accounts alike;
// the three cases are indistinguishable to callers.
var ErrAccountNotFound = errors.New("account not found")

// ErrVersionConflict is returned when a conditional account write is rejected
// by the store. The caller must re-read and retry with a fresh version.
var ErrVersionConflict = errors.New("account version conflict")

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

var ErrTransactionNotFound = errors.New("transaction not found")
var ErrBudgetNotFound = errors.New("budget not found")
var ErrGoalNotFound = errors.New("goal not found")

// ErrNoTransactions is returned by the export pipeline when the owner has
// nothing to export.
var ErrNoTransactions = errors.New("no transactions found")
