package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// BudgetService implements the budget use cases. Unlike transactions, writes
// use a read-then-mutate two-step: the record is fetched, its owner compared
// to the caller, and only then mutated. Absent and not-owned collapse to
// domain.ErrBudgetNotFound.
type BudgetService struct {
	repo   ports.BudgetRepository
	logger zerolog.Logger
}

func NewBudgetService(repo ports.BudgetRepository, logger zerolog.Logger) *BudgetService {
	return &BudgetService{repo: repo, logger: logger}
}

func (s *BudgetService) Create(ctx context.Context, in ports.BudgetInput) (*domain.Budget, error) {
	b := &domain.Budget{
		ID:       newID(),
		OwnerID:  in.OwnerID,
		Category: in.Category,
		Amount:   in.Amount.Round(2),
		Period:   in.Period,
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create budget")
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Get(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *BudgetService) List(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *BudgetService) Update(ctx context.Context, id string, in ports.BudgetInput) (*domain.Budget, error) {
	b, err := s.owned(ctx, in.OwnerID, id)
	if err != nil {
		return nil, err
	}

	b.Category = in.Category
	b.Amount = in.Amount.Round(2)
	b.Period = in.Period
	if err := s.repo.Replace(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned fetches the budget and enforces ownership, collapsing a foreign
// record into not-found.
func (s *BudgetService) owned(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}
