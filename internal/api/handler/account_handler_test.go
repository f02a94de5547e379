package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/api/middleware"
	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

type stubAccountService struct {
	createFn func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error)
	updateFn func(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, ownerID, accountID string) error
	getFn    func(ctx context.Context, ownerID, accountID string) (*domain.Account, error)
	listFn   func(ctx context.Context, in ports.ListAccountsInput) (*ports.AccountPage, error)
}

func (s *stubAccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAccountService) Update(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, in)
}

func (s *stubAccountService) SoftDelete(ctx context.Context, ownerID, accountID string) error {
	return s.deleteFn(ctx, ownerID, accountID)
}

func (s *stubAccountService) Get(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	return s.getFn(ctx, ownerID, accountID)
}

func (s *stubAccountService) List(ctx context.Context, in ports.ListAccountsInput) (*ports.AccountPage, error) {
	return s.listFn(ctx, in)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityKey, "user-1")
	return c, rec
}

func TestAccountHandler_Create_Success(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(_ context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
			if in.OwnerID != "user-1" {
				t.Fatalf("owner = %q, want caller identity", in.OwnerID)
			}
			if in.Type != domain.TypeChecking {
				t.Fatalf("type = %q", in.Type)
			}
			return &domain.Account{
				ID: "a1", OwnerID: in.OwnerID, Name: in.Name,
				Balance: in.Balance, Type: in.Type, Active: true, Version: 1,
			}, nil
		},
	}
	h := NewAccountHandler(stub, 20)

	c, rec := newTestContext(t, http.MethodPost, "/accounts",
		`{"name":"Main","balance":"150.25","type":"Checking"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["version"] != float64(1) || resp["active"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["balance"] != "150.25" {
		t.Fatalf("balance = %v, want the string \"150.25\"", resp["balance"])
	}
}

func TestAccountHandler_Create_InvalidType(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(_ context.Context, _ ports.CreateAccountInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAccountHandler(stub, 20)

	c, _ := newTestContext(t, http.MethodPost, "/accounts",
		`{"name":"Main","type":"Offshore"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
	if !strings.Contains(he.Message.(string), "type must be one of") {
		t.Fatalf("message = %v", he.Message)
	}
}

func TestAccountHandler_Create_MissingName(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{}, 20)

	c, _ := newTestContext(t, http.MethodPost, "/accounts", `{"type":"Checking"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
	if he.Message.(string) != "name is required" {
		t.Fatalf("message = %v", he.Message)
	}
}

func TestAccountHandler_Create_NoIdentity(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{}, 20)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"name":"Main","type":"Checking"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestAccountHandler_Update_VersionRequired(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{}, 20)

	c, _ := newTestContext(t, http.MethodPut, "/accounts/a1",
		`{"name":"Main","type":"Checking"}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
	if he.Message.(string) != "version is required" {
		t.Fatalf("message = %v", he.Message)
	}
}

func TestAccountHandler_Update_Conflict(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(_ context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
			if in.AccountID != "a1" || in.ExpectedVersion != 3 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, domain.ErrVersionConflict
		},
	}
	h := NewAccountHandler(stub, 20)

	c, _ := newTestContext(t, http.MethodPut, "/accounts/a1",
		`{"name":"Main","balance":"10","type":"Checking","version":3}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Update(c); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestAccountHandler_Update_Success(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(_ context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
			return &domain.Account{
				ID: in.AccountID, OwnerID: in.OwnerID, Name: in.Name,
				Balance: in.Balance, Type: in.Type, Active: true,
				Version: in.ExpectedVersion + 1,
			}, nil
		},
	}
	h := NewAccountHandler(stub, 20)

	c, rec := newTestContext(t, http.MethodPut, "/accounts/a1",
		`{"name":"Renamed","balance":"10","type":"Savings","version":1}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["version"] != float64(2) {
		t.Fatalf("version = %v, want 2", resp["version"])
	}
}

func TestAccountHandler_Delete_Success(t *testing.T) {
	stub := &stubAccountService{
		deleteFn: func(_ context.Context, ownerID, accountID string) error {
			if ownerID != "user-1" || accountID != "a1" {
				t.Fatalf("unexpected args: %s %s", ownerID, accountID)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub, 20)

	c, rec := newTestContext(t, http.MethodDelete, "/accounts/a1", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Account deleted" {
		t.Fatalf("message = %v", resp["message"])
	}
}

func TestAccountHandler_Delete_NotFound(t *testing.T) {
	stub := &stubAccountService{
		deleteFn: func(_ context.Context, _, _ string) error {
			return domain.ErrAccountNotFound
		},
	}
	h := NewAccountHandler(stub, 20)

	c, _ := newTestContext(t, http.MethodDelete, "/accounts/a1", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestAccountHandler_List_PassesParams(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(_ context.Context, in ports.ListAccountsInput) (*ports.AccountPage, error) {
			if in.PageSize != 5 || in.Cursor != "abc" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AccountPage{
				Items: []domain.Account{{ID: "a1", Balance: decimal.Zero}},
			}, nil
		},
	}
	h := NewAccountHandler(stub, 20)

	c, rec := newTestContext(t, http.MethodGet, "/accounts?pageSize=5&cursor=abc", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_List_BadPageSize(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{}, 20)

	for _, raw := range []string{"zero", "-1", "0"} {
		c, _ := newTestContext(t, http.MethodGet, "/accounts?pageSize="+raw, "")

		err := h.List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("pageSize=%s: err = %v, want 400", raw, err)
		}
	}
}
