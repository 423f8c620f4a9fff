package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/reports"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles sales analytics.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// InvoiceStats handles POST /api/invoice/stats. Aggregation happens in SQL;
// the response carries at most a year of periods, newest first.
func (h *ReportsHandler) InvoiceStats(c *gin.Context) {
	var req dto.StatsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rows, err := h.service.SalesStats(c.Request.Context(), req.FilterType)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStats(rows))
}

// DashboardSummary handles GET /api/dashboard/summary.
func (h *ReportsHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.service.DashboardSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSummary(summary))
}
