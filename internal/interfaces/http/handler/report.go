package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/judn/backend/internal/application/report"
)

// ReportHandler handles dashboard and trend reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the aggregate stats for the admin landing page
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// SalesTrends returns per-day sales figures for the last N days
func (h *ReportHandler) SalesTrends(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			h.BadRequest(c, "days must be between 1 and 365")
			return
		}
		days = parsed
	}

	trends, err := h.reportService.SalesTrends(c.Request.Context(), days)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trends)
}
