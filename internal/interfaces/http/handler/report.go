package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/retailops/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseDateRange reads the optional from/to query parameters. A zero
// bound means unbounded on that side.
func (h *ReportHandler) parseDateRange(c *gin.Context) (reportapp.DateRange, bool) {
	var dr reportapp.DateRange

	if raw := c.Query("from"); raw != "" {
		from, err := parseDateTime(raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date format")
			return dr, false
		}
		dr.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDateTime(raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date format")
			return dr, false
		}
		dr.To = to
	}
	return dr, true
}

// SalesSummary returns aggregated sales totals over the range
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	dr, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), dr)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// TopItems returns the best-selling items over the range
func (h *ReportHandler) TopItems(c *gin.Context) {
	dr, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := h.reportService.TopItems(c.Request.Context(), dr, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// InventoryValue returns the current stock valuation
func (h *ReportHandler) InventoryValue(c *gin.Context) {
	valuation, err := h.reportService.InventoryValuation(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, valuation)
}

// Dashboard returns the headline KPIs
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dr, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	dashboard, err := h.reportService.Dashboard(c.Request.Context(), dr)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// RegisterRoutes registers the reporting endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/sales-summary", h.SalesSummary)
		reports.GET("/top-items", h.TopItems)
		reports.GET("/inventory-value", h.InventoryValue)
		reports.GET("/dashboard", h.Dashboard)
	}
}
