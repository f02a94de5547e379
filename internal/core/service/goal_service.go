package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// GoalService implements the goal use cases with the same read-then-mutate
// ownership check as budgets.
type GoalService struct {
	repo   ports.GoalRepository
	logger zerolog.Logger
}

func NewGoalService(repo ports.GoalRepository, logger zerolog.Logger) *GoalService {
	return &GoalService{repo: repo, logger: logger}
}

func (s *GoalService) Create(ctx context.Context, in ports.GoalInput) (*domain.Goal, error) {
	g := &domain.Goal{
		ID:            newID(),
		OwnerID:       in.OwnerID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount.Round(2),
		CurrentAmount: in.CurrentAmount.Round(2),
		Deadline:      in.Deadline,
	}
	if err := s.repo.Insert(ctx, g); err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create goal")
		return nil, err
	}
	return g, nil
}

func (s *GoalService) Get(ctx context.Context, ownerID, id string) (*domain.Goal, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *GoalService) List(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *GoalService) Update(ctx context.Context, id string, in ports.GoalInput) (*domain.Goal, error) {
	g, err := s.owned(ctx, in.OwnerID, id)
	if err != nil {
		return nil, err
	}

	g.Name = in.Name
	g.TargetAmount = in.TargetAmount.Round(2)
	g.CurrentAmount = in.CurrentAmount.Round(2)
	g.Deadline = in.Deadline
	if err := s.repo.Replace(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *GoalService) owned(ctx context.Context, ownerID, id string) (*domain.Goal, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != ownerID {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}
