package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/bookkeeping-api/internal/api/middleware"
)

// messageResponse is the uniform body for errors and message-only successes.
type messageResponse struct {
	Message string `json:"message"`
}

// callerIdentity extracts the identity injected by the Auth middleware and
// fast-fails with 401 before any store call when it is absent.
func callerIdentity(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.IdentityKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
