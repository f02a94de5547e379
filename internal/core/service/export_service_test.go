package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

type stubExportStorage struct {
	filename string
	data     []byte
	putErr   error
}

func (s *stubExportStorage) Put(_ context.Context, filename string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.filename = filename
	s.data = data
	return nil
}

func newExportFixture(t *testing.T) (*ExportService, *stubTransactionRepo, *stubExportStorage) {
	t.Helper()
	transactions := newStubTransactionRepo()
	storage := &stubExportStorage{}
	return NewExportService(transactions, storage, zerolog.Nop()), transactions, storage
}

func TestExport(t *testing.T) {
	svc, transactions, storage := newExportFixture(t)

	transactions.transactions["t1"] = &domain.Transaction{
		ID: "t1", OwnerID: "user-1", Date: "2024-01-10",
		Amount: decimal.RequireFromString("-12.50"), Category: "groceries", Description: "weekly shop",
	}
	transactions.transactions["t2"] = &domain.Transaction{
		ID: "t2", OwnerID: "user-2", Date: "2024-01-11",
		Amount: decimal.RequireFromString("-99"), Category: "other",
	}

	result, err := svc.Export(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Rows != 1 {
		t.Errorf("rows = %d, want 1 (owner-scoped)", result.Rows)
	}
	if !strings.HasPrefix(result.Filename, "export_user-1_") || !strings.HasSuffix(result.Filename, ".csv") {
		t.Errorf("filename = %q, want export_user-1_*.csv", result.Filename)
	}
	if storage.filename != result.Filename {
		t.Errorf("stored under %q, reported %q", storage.filename, result.Filename)
	}

	records, err := csv.NewReader(strings.NewReader(string(storage.data))).ReadAll()
	if err != nil {
		t.Fatalf("parse stored CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv rows = %d, want header + 1", len(records))
	}
	wantHeader := []string{"Date", "Amount", "Category", "Description"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header = %v, want %v", records[0], wantHeader)
		}
	}
	row := records[1]
	if row[0] != "2024-01-10" || row[1] != "-12.50" || row[2] != "groceries" || row[3] != "weekly shop" {
		t.Errorf("row = %v", row)
	}
}

func TestExport_NoTransactions(t *testing.T) {
	svc, _, storage := newExportFixture(t)

	_, err := svc.Export(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrNoTransactions) {
		t.Fatalf("err = %v, want ErrNoTransactions", err)
	}
	if storage.filename != "" {
		t.Error("nothing should be uploaded for an empty export")
	}
}

func TestExport_StorageFailure(t *testing.T) {
	svc, transactions, storage := newExportFixture(t)

	transactions.transactions["t1"] = &domain.Transaction{
		ID: "t1", OwnerID: "user-1", Date: "2024-01-10", Amount: decimal.RequireFromString("5"),
	}
	storage.putErr = errors.New("bucket unavailable")

	if _, err := svc.Export(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error when upload fails")
	}
}
