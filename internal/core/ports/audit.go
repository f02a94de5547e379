package ports

import (
	"context"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// AuditRepository is the append-only audit trail. It has no read, update, or
// delete surface.
type AuditRepository interface {
	Append(ctx context.Context, e *domain.AuditEvent) error
}
