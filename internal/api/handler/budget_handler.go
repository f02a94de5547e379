package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// BudgetHandler handles HTTP requests for budgets.
type BudgetHandler struct {
	service ports.BudgetService
}

func NewBudgetHandler(service ports.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type budgetRequest struct {
	Category string          `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount"   validate:"required,gt=0"`
	Period   string          `json:"period"   validate:"required,oneof=weekly monthly yearly"`
}

func (r budgetRequest) toInput(ownerID string) ports.BudgetInput {
	return ports.BudgetInput{
		OwnerID:  ownerID,
		Category: r.Category,
		Amount:   r.Amount,
		Period:   domain.BudgetPeriod(r.Period),
	}
}

// Create handles POST /budgets.
func (h *BudgetHandler) Create(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req budgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	budget, err := h.service.Create(c.Request().Context(), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, budget)
}

// List handles GET /budgets.
func (h *BudgetHandler) List(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	budgets, err := h.service.List(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budgets)
}

// Get handles GET /budgets/:id.
func (h *BudgetHandler) Get(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	budget, err := h.service.Get(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budget)
}

// Update handles PUT /budgets/:id.
func (h *BudgetHandler) Update(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req budgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	budget, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budget)
}

// Delete handles DELETE /budgets/:id.
func (h *BudgetHandler) Delete(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Budget deleted"})
}
