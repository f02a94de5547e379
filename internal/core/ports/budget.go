package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// BudgetInput carries the validated fields of a budget write.
type BudgetInput struct {
	OwnerID  string
	Category string
	Amount   decimal.Decimal
	Period   domain.BudgetPeriod
}

// BudgetRepository defines persistence for budgets. FindByID is unscoped:
// the service performs the ownership check itself (read-then-mutate
// two-step), so absent and not-owned collapse at the service layer.
type BudgetRepository interface {
	Insert(ctx context.Context, b *domain.Budget) error
	FindByID(ctx context.Context, id string) (*domain.Budget, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error)
	Replace(ctx context.Context, b *domain.Budget) error
	Delete(ctx context.Context, id string) error
}

// BudgetService defines the budget use cases.
type BudgetService interface {
	Create(ctx context.Context, in BudgetInput) (*domain.Budget, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	List(ctx context.Context, ownerID string) ([]domain.Budget, error)
	Update(ctx context.Context, id string, in BudgetInput) (*domain.Budget, error)
	Delete(ctx context.Context, ownerID, id string) error
}
