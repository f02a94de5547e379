package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/bookkeeping-api/internal/api/metrics"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// AnalyticsHandler serves the read-only summary endpoint.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Summary handles GET /analytics/summary. Any failing scan fails the whole
// request; there is no partial summary.
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), callerID)
	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SummaryRequestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, summary)
}
