package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AccountService implements the version-checked account use cases. Every
// create, update, and soft delete appends an audit event after the primary
// mutation commits; a failed audit write never rolls the mutation back.
type AccountService struct {
	repo   ports.AccountRepository
	audit  ports.AuditRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, audit ports.AuditRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, audit: audit, logger: logger}
}

// Create persists a new account at version 1 with Active=true.
func (s *AccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:        newID(),
		OwnerID:   in.OwnerID,
		Name:      in.Name,
		Balance:   in.Balance.Round(2),
		Type:      in.Type,
		Active:    true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, account); err != nil {
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create account")
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.appendAudit(ctx, in.OwnerID, domain.AuditCreateAccount, map[string]any{
		"accountId": account.ID,
		"name":      account.Name,
		"type":      string(account.Type),
	})

	s.logger.Info().Str("account_id", account.ID).Str("owner_id", in.OwnerID).Msg("account created")
	return account, nil
}

// Update issues the version-conditioned write. The second of two racing
// updates receives domain.ErrVersionConflict and must re-read and retry:
// there is no merge logic and no internal retry.
func (s *AccountService) Update(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
	in.Balance = in.Balance.Round(2)

	updated, err := s.repo.UpdateVersioned(ctx, in, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, in.OwnerID, domain.AuditUpdateAccount, map[string]any{
		"accountId":  in.AccountID,
		"oldVersion": in.ExpectedVersion,
		"newVersion": updated.Version,
	})

	s.logger.Info().
		Str("account_id", in.AccountID).
		Int64("version", updated.Version).
		Msg("account updated")
	return updated, nil
}

// SoftDelete marks the account inactive. Not-owned and already-deleted both
// surface as domain.ErrAccountNotFound so record existence never leaks.
func (s *AccountService) SoftDelete(ctx context.Context, ownerID, accountID string) error {
	if err := s.repo.Deactivate(ctx, ownerID, accountID, time.Now().UTC()); err != nil {
		return err
	}

	s.appendAudit(ctx, ownerID, domain.AuditDeleteAccount, map[string]any{
		"accountId": accountID,
	})

	s.logger.Info().Str("account_id", accountID).Msg("account soft-deleted")
	return nil
}

func (s *AccountService) Get(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, ownerID, accountID)
}

// List returns a page of the owner's active accounts with an opaque
// continuation cursor when more results remain.
func (s *AccountService) List(ctx context.Context, in ports.ListAccountsInput) (*ports.AccountPage, error) {
	limit := in.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	afterID := ""
	if in.Cursor != "" {
		raw, err := base64.RawURLEncoding.DecodeString(in.Cursor)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		afterID = string(raw)
	}

	items, next, err := s.repo.List(ctx, in.OwnerID, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	page := &ports.AccountPage{Items: items}
	if next != "" {
		page.NextCursor = base64.RawURLEncoding.EncodeToString([]byte(next))
	}
	return page, nil
}

// appendAudit writes to the audit trail. Audit is advisory: a failure is
// logged and the primary mutation stands.
func (s *AccountService) appendAudit(ctx context.Context, userID, action string, detail map[string]any) {
	event := &domain.AuditEvent{
		ID:        newID(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Detail:    detail,
	}
	if err := s.audit.Append(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to append audit event")
	}
}

// newID returns a fresh opaque record identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
