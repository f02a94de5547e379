package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// GoalHandler handles HTTP requests for savings goals.
type GoalHandler struct {
	service ports.GoalService
}

func NewGoalHandler(service ports.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

type goalRequest struct {
	Name          string          `json:"name"          validate:"required"`
	TargetAmount  decimal.Decimal `json:"targetAmount"  validate:"required,gt=0"`
	CurrentAmount decimal.Decimal `json:"currentAmount" validate:"gte=0"`
	Deadline      string          `json:"deadline"      validate:"required,datetime=2006-01-02"`
}

func (r goalRequest) toInput(ownerID string) ports.GoalInput {
	return ports.GoalInput{
		OwnerID:       ownerID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      r.Deadline,
	}
}

// Create handles POST /goals.
func (h *GoalHandler) Create(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.Create(c.Request().Context(), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// List handles GET /goals.
func (h *GoalHandler) List(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	goals, err := h.service.List(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

// Get handles GET /goals/:id.
func (h *GoalHandler) Get(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	goal, err := h.service.Get(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// Update handles PUT /goals/:id.
func (h *GoalHandler) Update(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput(callerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// Delete handles DELETE /goals/:id.
func (h *GoalHandler) Delete(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Goal deleted"})
}
