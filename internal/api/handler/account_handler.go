package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/api/metrics"
	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// AccountHandler handles HTTP requests for accounts, the version-checked
// resource. Updates carry the caller's expected version; a stale version is
// a 409 and retrying is the caller's job.
type AccountHandler struct {
	service         ports.AccountService
	defaultPageSize int
}

func NewAccountHandler(service ports.AccountService, defaultPageSize int) *AccountHandler {
	return &AccountHandler{service: service, defaultPageSize: defaultPageSize}
}

type createAccountRequest struct {
	Name    string          `json:"name"    validate:"required,max=100"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type"    validate:"required,oneof=Checking Savings CreditCard Investment"`
}

type updateAccountRequest struct {
	Name    string          `json:"name"    validate:"required,max=100"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type"    validate:"required,oneof=Checking Savings CreditCard Investment"`
	Version int64           `json:"version" validate:"required,gt=0"`
}

// Create handles POST /accounts. The new record starts at version 1.
func (h *AccountHandler) Create(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), ports.CreateAccountInput{
		OwnerID: callerID,
		Name:    req.Name,
		Balance: req.Balance,
		Type:    domain.AccountType(req.Type),
	})
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(req.Type).Inc()
	return c.JSON(http.StatusCreated, account)
}

// List handles GET /accounts with optional cursor and pageSize parameters.
func (h *AccountHandler) List(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	pageSize := h.defaultPageSize
	if raw := c.QueryParam("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "pageSize must be a positive integer")
		}
		pageSize = n
	}

	page, err := h.service.List(c.Request().Context(), ports.ListAccountsInput{
		OwnerID:  callerID,
		Cursor:   c.QueryParam("cursor"),
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /accounts/:id.
func (h *AccountHandler) Get(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update handles PUT /accounts/:id, the optimistic-concurrency write.
func (h *AccountHandler) Update(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Update(c.Request().Context(), ports.UpdateAccountInput{
		OwnerID:         callerID,
		AccountID:       c.Param("id"),
		Name:            req.Name,
		Balance:         req.Balance,
		Type:            domain.AccountType(req.Type),
		ExpectedVersion: req.Version,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.AccountVersionConflictsTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /accounts/:id. Deletion is logical: the record stays,
// flagged inactive, and a second delete reads as 404.
func (h *AccountHandler) Delete(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.SoftDelete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted"})
}
