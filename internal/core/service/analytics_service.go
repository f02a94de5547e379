package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerly/bookkeeping-api/internal/core/analytics"
	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// SummaryCache abstracts the short-TTL summary store (Redis). A nil summary
// with a nil error is a cache miss.
type SummaryCache interface {
	Get(ctx context.Context, ownerID string) (*analytics.Summary, error)
	Set(ctx context.Context, ownerID string, s *analytics.Summary) error
}

// AnalyticsService materialises the three owner-scoped collections and feeds
// them to the pure aggregation engine. The three scans are independent and
// read-only, so they fan out concurrently; if any one fails the whole
// summary fails. No partial summary is ever returned.
type AnalyticsService struct {
	transactions ports.TransactionRepository
	budgets      ports.BudgetRepository
	goals        ports.GoalRepository
	cache        SummaryCache
	logger       zerolog.Logger
}

func NewAnalyticsService(
	transactions ports.TransactionRepository,
	budgets ports.BudgetRepository,
	goals ports.GoalRepository,
	cache SummaryCache,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		cache:        cache,
		logger:       logger,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context, ownerID string) (*analytics.Summary, error) {
	// Cache errors are non-fatal: fall through to the store.
	if cached, err := s.cache.Get(ctx, ownerID); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("summary cache read failed")
	} else if cached != nil {
		s.logger.Debug().Str("owner_id", ownerID).Msg("summary cache hit")
		return cached, nil
	}

	var (
		transactions []domain.Transaction
		budgets      []domain.Budget
		goals        []domain.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.ListByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}

	summary := analytics.Summarize(transactions, budgets, goals)

	if err := s.cache.Set(ctx, ownerID, &summary); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("summary cache write failed")
	}

	return &summary, nil
}
