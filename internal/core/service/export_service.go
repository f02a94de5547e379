package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

var exportHeader = []string{"Date", "Amount", "Category", "Description"}

// ExportService scans the owner's transactions, serialises them to CSV, and
// hands the file to blob storage under export_{ownerId}_{isoTimestamp}.csv.
type ExportService struct {
	transactions ports.TransactionRepository
	storage      ports.ExportStorage
	logger       zerolog.Logger
}

func NewExportService(transactions ports.TransactionRepository, storage ports.ExportStorage, logger zerolog.Logger) *ExportService {
	return &ExportService{transactions: transactions, storage: storage, logger: logger}
}

func (s *ExportService) Export(ctx context.Context, ownerID string) (*ports.ExportResult, error) {
	transactions, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if len(transactions) == 0 {
		return nil, domain.ErrNoTransactions
	}

	data, err := serializeCSV(transactions)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	filename := fmt.Sprintf("export_%s_%s.csv", ownerID, time.Now().UTC().Format(time.RFC3339))
	if err := s.storage.Put(ctx, filename, data); err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("export upload failed")
		return nil, fmt.Errorf("export: %w", err)
	}

	s.logger.Info().Str("filename", filename).Int("rows", len(transactions)).Msg("export stored")
	return &ports.ExportResult{Filename: filename, Rows: len(transactions)}, nil
}

func serializeCSV(transactions []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		if err := w.Write([]string{t.Date, t.Amount.String(), t.Category, t.Description}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
