package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// CreateAccountInput carries the validated fields for a new account.
type CreateAccountInput struct {
	OwnerID string
	Name    string
	Balance decimal.Decimal
	Type    domain.AccountType
}

// UpdateAccountInput carries a version-checked account update.
// ExpectedVersion must equal the stored version or the write is rejected.
type UpdateAccountInput struct {
	OwnerID         string
	AccountID       string
	Name            string
	Balance         decimal.Decimal
	Type            domain.AccountType
	ExpectedVersion int64
}

// ListAccountsInput carries pagination parameters for the account list.
// Cursor is the opaque token returned by a previous page; empty means start
// from the beginning.
type ListAccountsInput struct {
	OwnerID  string
	Cursor   string
	PageSize int
}

// AccountPage is one page of active accounts. NextCursor is empty when no
// further results remain.
type AccountPage struct {
	Items      []domain.Account `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// AccountRepository defines persistence for accounts. All reads see only
// active records owned by the given owner; conditional writes surface the
// store's single condition-failed signal as a domain error.
type AccountRepository interface {
	Insert(ctx context.Context, a *domain.Account) error
	// FindByID returns the account only when it is active and owned by
	// ownerID; otherwise domain.ErrAccountNotFound.
	FindByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error)
	// List returns up to limit active accounts owned by ownerID, ordered by
	// id, starting after afterID (empty = first page). The returned token is
	// the position to resume from, or empty when the page was the last.
	List(ctx context.Context, ownerID, afterID string, limit int) ([]domain.Account, string, error)
	// UpdateVersioned applies in atomically if and only if the stored record
	// is active, owned by in.OwnerID, and at version in.ExpectedVersion. On
	// success the stored version is incremented by exactly 1 and the updated
	// record returned. Any condition failure (stale version, missing,
	// inactive, or not owned) yields domain.ErrVersionConflict.
	UpdateVersioned(ctx context.Context, in UpdateAccountInput, now time.Time) (*domain.Account, error)
	// Deactivate flips Active to false if the record is active and owned by
	// ownerID; otherwise domain.ErrAccountNotFound.
	Deactivate(ctx context.Context, ownerID, accountID string, now time.Time) error
}

// AccountService defines the account use cases.
type AccountService interface {
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, in UpdateAccountInput) (*domain.Account, error)
	SoftDelete(ctx context.Context, ownerID, accountID string) error
	Get(ctx context.Context, ownerID, accountID string) (*domain.Account, error)
	List(ctx context.Context, in ListAccountsInput) (*AccountPage, error)
}
