package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// stubAccountRepo is an in-memory AccountRepository with the same conditional
// write semantics as the mongo implementation.
type stubAccountRepo struct {
	accounts  map[string]*domain.Account
	insertErr error
	listErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Insert(_ context.Context, a *domain.Account) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, ownerID, accountID string) (*domain.Account, error) {
	a, ok := r.accounts[accountID]
	if !ok || a.OwnerID != ownerID || !a.Active {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubAccountRepo) List(_ context.Context, ownerID, afterID string, limit int) ([]domain.Account, string, error) {
	if r.listErr != nil {
		return nil, "", r.listErr
	}
	ids := make([]string, 0, len(r.accounts))
	for id, a := range r.accounts {
		if a.OwnerID == ownerID && a.Active && id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	next := ""
	if len(ids) > limit {
		ids = ids[:limit]
		next = ids[limit-1]
	}
	items := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		items = append(items, *r.accounts[id])
	}
	return items, next, nil
}

func (r *stubAccountRepo) UpdateVersioned(_ context.Context, in ports.UpdateAccountInput, now time.Time) (*domain.Account, error) {
	a, ok := r.accounts[in.AccountID]
	if !ok || a.OwnerID != in.OwnerID || !a.Active || a.Version != in.ExpectedVersion {
		return nil, domain.ErrVersionConflict
	}
	a.Name = in.Name
	a.Balance = in.Balance
	a.Type = in.Type
	a.Version++
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (r *stubAccountRepo) Deactivate(_ context.Context, ownerID, accountID string, now time.Time) error {
	a, ok := r.accounts[accountID]
	if !ok || a.OwnerID != ownerID || !a.Active {
		return domain.ErrAccountNotFound
	}
	a.Active = false
	a.UpdatedAt = now
	return nil
}

// stubAuditRepo records appended events and can be made to fail.
type stubAuditRepo struct {
	events    []*domain.AuditEvent
	appendErr error
}

func (r *stubAuditRepo) Append(_ context.Context, e *domain.AuditEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, e)
	return nil
}

func newAccountFixture(t *testing.T) (*AccountService, *stubAccountRepo, *stubAuditRepo) {
	t.Helper()
	repo := newStubAccountRepo()
	audit := &stubAuditRepo{}
	return NewAccountService(repo, audit, zerolog.Nop()), repo, audit
}

func TestAccountCreate(t *testing.T) {
	svc, _, audit := newAccountFixture(t)

	account, err := svc.Create(context.Background(), ports.CreateAccountInput{
		OwnerID: "user-1",
		Name:    "Main checking",
		Balance: decimal.RequireFromString("100.505"),
		Type:    domain.TypeChecking,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if account.Version != 1 {
		t.Errorf("version = %d, want 1", account.Version)
	}
	if !account.Active {
		t.Error("expected account to be active")
	}
	if !account.Balance.Equal(decimal.RequireFromString("100.51")) {
		t.Errorf("balance = %s, want 100.51 (rounded)", account.Balance)
	}
	if account.ID == "" {
		t.Error("expected a generated id")
	}

	if len(audit.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(audit.events))
	}
	if audit.events[0].Action != domain.AuditCreateAccount {
		t.Errorf("audit action = %s, want %s", audit.events[0].Action, domain.AuditCreateAccount)
	}
	if audit.events[0].UserID != "user-1" {
		t.Errorf("audit user = %s, want user-1", audit.events[0].UserID)
	}
}

func TestAccountCreate_InsertError(t *testing.T) {
	svc, repo, audit := newAccountFixture(t)
	repo.insertErr = errors.New("write failed")

	if _, err := svc.Create(context.Background(), ports.CreateAccountInput{OwnerID: "user-1"}); err == nil {
		t.Fatal("expected error")
	}
	if len(audit.events) != 0 {
		t.Errorf("no audit event expected after failed insert, got %d", len(audit.events))
	}
}

func TestAccountUpdate_VersionMatch(t *testing.T) {
	svc, _, audit := newAccountFixture(t)

	account, err := svc.Create(context.Background(), ports.CreateAccountInput{
		OwnerID: "user-1",
		Name:    "Savings",
		Type:    domain.TypeSavings,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		OwnerID:         "user-1",
		AccountID:       account.ID,
		Name:            "Savings renamed",
		Balance:         decimal.RequireFromString("42"),
		Type:            domain.TypeSavings,
		ExpectedVersion: 1,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, want 2", updated.Version)
	}
	if updated.Name != "Savings renamed" {
		t.Errorf("name = %q", updated.Name)
	}

	last := audit.events[len(audit.events)-1]
	if last.Action != domain.AuditUpdateAccount {
		t.Fatalf("audit action = %s, want %s", last.Action, domain.AuditUpdateAccount)
	}
	if last.Detail["oldVersion"] != int64(1) || last.Detail["newVersion"] != int64(2) {
		t.Errorf("audit detail versions = %v", last.Detail)
	}
}

func TestAccountUpdate_StaleVersion(t *testing.T) {
	svc, _, audit := newAccountFixture(t)

	account, _ := svc.Create(context.Background(), ports.CreateAccountInput{OwnerID: "user-1", Type: domain.TypeChecking})

	first := ports.UpdateAccountInput{
		OwnerID: "user-1", AccountID: account.ID,
		Name: "first writer", Type: domain.TypeChecking, ExpectedVersion: 1,
	}
	if _, err := svc.Update(context.Background(), first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// Second writer still holds version 1.
	second := first
	second.Name = "second writer"
	_, err := svc.Update(context.Background(), second)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}

	// Only create + first update were audited.
	if len(audit.events) != 2 {
		t.Errorf("audit events = %d, want 2", len(audit.events))
	}
}

func TestAccountUpdate_ForeignOwner(t *testing.T) {
	svc, _, _ := newAccountFixture(t)

	account, _ := svc.Create(context.Background(), ports.CreateAccountInput{OwnerID: "user-1", Type: domain.TypeChecking})

	_, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		OwnerID: "user-2", AccountID: account.ID,
		Type: domain.TypeChecking, ExpectedVersion: 1,
	})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestAccountSoftDelete(t *testing.T) {
	svc, repo, audit := newAccountFixture(t)

	account, _ := svc.Create(context.Background(), ports.CreateAccountInput{OwnerID: "user-1", Type: domain.TypeChecking})

	if err := svc.SoftDelete(context.Background(), "user-1", account.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if repo.accounts[account.ID].Active {
		t.Error("account should be inactive")
	}

	// Deleted accounts are invisible to reads.
	if _, err := svc.Get(context.Background(), "user-1", account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("Get after delete: err = %v, want ErrAccountNotFound", err)
	}

	// Repeating the delete reports not-found, same as a missing record.
	if err := svc.SoftDelete(context.Background(), "user-1", account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("second delete: err = %v, want ErrAccountNotFound", err)
	}

	last := audit.events[len(audit.events)-1]
	if last.Action != domain.AuditDeleteAccount {
		t.Errorf("audit action = %s, want %s", last.Action, domain.AuditDeleteAccount)
	}
}

func TestAccountMutation_AuditFailureNonFatal(t *testing.T) {
	svc, _, audit := newAccountFixture(t)
	audit.appendErr = errors.New("audit store down")

	account, err := svc.Create(context.Background(), ports.CreateAccountInput{OwnerID: "user-1", Type: domain.TypeChecking})
	if err != nil {
		t.Fatalf("Create must succeed despite audit failure: %v", err)
	}
	if err := svc.SoftDelete(context.Background(), "user-1", account.ID); err != nil {
		t.Fatalf("SoftDelete must succeed despite audit failure: %v", err)
	}
}

func TestAccountList_Pagination(t *testing.T) {
	svc, _, _ := newAccountFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateAccountInput{
			OwnerID: "user-1", Name: "acct", Type: domain.TypeChecking,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	first, err := svc.List(context.Background(), ports.ListAccountsInput{OwnerID: "user-1", PageSize: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("page 1 items = %d, want 2", len(first.Items))
	}
	if first.NextCursor == "" {
		t.Fatal("expected a continuation cursor")
	}

	second, err := svc.List(context.Background(), ports.ListAccountsInput{
		OwnerID: "user-1", PageSize: 2, Cursor: first.NextCursor,
	})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(second.Items) != 1 {
		t.Fatalf("page 2 items = %d, want 1", len(second.Items))
	}
	if second.NextCursor != "" {
		t.Errorf("unexpected cursor on last page: %q", second.NextCursor)
	}

	// Pages must not overlap.
	seen := make(map[string]bool)
	for _, a := range append(first.Items, second.Items...) {
		if seen[a.ID] {
			t.Fatalf("account %s appeared on two pages", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestAccountList_InvalidCursor(t *testing.T) {
	svc, _, _ := newAccountFixture(t)

	_, err := svc.List(context.Background(), ports.ListAccountsInput{OwnerID: "user-1", Cursor: "not base64!!"})
	if !errors.Is(err, domain.ErrInvalidCursor) {
		t.Fatalf("err = %v, want ErrInvalidCursor", err)
	}
}

func TestAccountList_EmptyResult(t *testing.T) {
	svc, _, _ := newAccountFixture(t)

	page, err := svc.List(context.Background(), ports.ListAccountsInput{OwnerID: "user-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 0 || page.NextCursor != "" {
		t.Fatalf("expected empty page, got %+v", page)
	}
}
