package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user profiles. The profile id is the
// caller identity; requests against any other id read as not-found.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userProfileRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req userProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), callerID, ports.UserProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req userProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), callerID, c.Param("id"), ports.UserProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}
