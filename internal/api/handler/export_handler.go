package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/bookkeeping-api/internal/api/metrics"
	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// ExportHandler serves the CSV export endpoint.
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

type exportResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// Export handles GET /export.
func (h *ExportHandler) Export(c echo.Context) error {
	callerID, err := callerIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Export(c.Request().Context(), callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoTransactions) {
			metrics.ExportsTotal.WithLabelValues("empty").Inc()
		} else {
			metrics.ExportsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, exportResponse{
		Message:  "Export successful",
		Filename: result.Filename,
	})
}
