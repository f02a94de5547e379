package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// TransactionService implements the transaction use cases. Ownership is
// enforced inside single conditional writes: mutating a record that is absent
// or owned by someone else yields the same not-found outcome.
type TransactionService struct {
	repo   ports.TransactionRepository
	logger zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, logger zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, logger: logger}
}

func (s *TransactionService) Create(ctx context.Context, in ports.TransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()
	t := &domain.Transaction{
		ID:          newID(),
		OwnerID:     in.OwnerID,
		AccountID:   in.AccountID,
		Date:        in.Date,
		Amount:      in.Amount.Round(2),
		Category:    in.Category,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create transaction")
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Get(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

func (s *TransactionService) List(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TransactionService) Update(ctx context.Context, id string, in ports.TransactionInput) (*domain.Transaction, error) {
	t := &domain.Transaction{
		ID:          id,
		OwnerID:     in.OwnerID,
		AccountID:   in.AccountID,
		Date:        in.Date,
		Amount:      in.Amount.Round(2),
		Category:    in.Category,
		Description: in.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	return s.repo.Update(ctx, t)
}

func (s *TransactionService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}
