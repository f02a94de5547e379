package ports

import "context"

// ExportStorage is the blob store the export pipeline hands finished files
// to. It accepts a named object write and reports success or failure.
type ExportStorage interface {
	Put(ctx context.Context, filename string, data []byte) error
}

// ExportResult describes a completed export.
type ExportResult struct {
	Filename string
	Rows     int
}

// ExportService serializes an owner's transactions to CSV and stores the
// file. Zero transactions yield domain.ErrNoTransactions.
type ExportService interface {
	Export(ctx context.Context, ownerID string) (*ExportResult, error)
}
