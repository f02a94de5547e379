package ports

import (
	"context"

	"github.com/ledgerly/bookkeeping-api/internal/core/analytics"
)

// AnalyticsService produces the owner-scoped analytics summary.
type AnalyticsService interface {
	Summary(ctx context.Context, ownerID string) (*analytics.Summary, error)
}
