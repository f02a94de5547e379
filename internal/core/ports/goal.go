package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// GoalInput carries the validated fields of a goal write.
type GoalInput struct {
	OwnerID       string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      string
}

// GoalRepository defines persistence for goals. Ownership is checked by the
// service via a preceding read, mirroring BudgetRepository.
type GoalRepository interface {
	Insert(ctx context.Context, g *domain.Goal) error
	FindByID(ctx context.Context, id string) (*domain.Goal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Goal, error)
	Replace(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

// GoalService defines the goal use cases.
type GoalService interface {
	Create(ctx context.Context, in GoalInput) (*domain.Goal, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Goal, error)
	List(ctx context.Context, ownerID string) ([]domain.Goal, error)
	Update(ctx context.Context, id string, in GoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, ownerID, id string) error
}
