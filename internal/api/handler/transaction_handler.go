package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// TransactionHandler handles HTTP requests for transactions.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// transactionRequest is shared by create and update. Amount is signed:
// positive income, negative expense; zero is legal and counts as neither.
type transactionRequest struct {
	AccountID   string          `json:"accountId" validate:"required"`
	Date        string          `json:"date"      validate:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"  validate:"required"`
	Description string          `json:"description"`
}

func (r transactionRequest) toInput(ownerID string) ports.TransactionInput {
	return ports.TransactionInput{
		OwnerID:     ownerID,
		AccountID:   r.AccountID,
		Date:        r.Date,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transaction, err := h.service.Create(c.Request().Context(), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transaction)
}

// List handles GET /transactions.
func (h *TransactionHandler) List(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	transactions, err := h.service.List(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

// Get handles GET /transactions/:id.
func (h *TransactionHandler) Get(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	transaction, err := h.service.Get(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transaction)
}

// Update handles PUT /transactions/:id.
func (h *TransactionHandler) Update(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transaction, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transaction)
}

// Delete handles DELETE /transactions/:id.
func (h *TransactionHandler) Delete(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Transaction deleted"})
}
