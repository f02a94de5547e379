package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// TransactionInput carries the validated fields of a transaction write.
// Amount is signed: positive for income, negative for expense.
type TransactionInput struct {
	OwnerID     string
	AccountID   string
	Date        string
	Amount      decimal.Decimal
	Category    string
	Description string
}

// TransactionRepository defines persistence for transactions. Update and
// Delete are single conditional writes filtered by owner: a missing record
// and someone else's record produce the same domain.ErrTransactionNotFound.
type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	// ListByOwner returns every transaction owned by ownerID, unordered.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	// Update applies t's editable fields conditionally on {id, owner} and
	// returns the stored record after the write.
	Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TransactionService defines the transaction use cases.
type TransactionService interface {
	Create(ctx context.Context, in TransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	List(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	Update(ctx context.Context, id string, in TransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, ownerID, id string) error
}
