package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/application/report"
)

// ReportHandler handles financial reporting HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the income and spending summary for a date range
func (h *ReportHandler) Summary(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		h.BadRequest(c, "Invalid start_date parameter, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		h.BadRequest(c, "Invalid end_date parameter, expected YYYY-MM-DD")
		return
	}

	resp, err := h.reportService.FinancialSummary(c.Request.Context(), actor, societyID, startDate, endDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Monthly returns the full report for one billing period
func (h *ReportHandler) Monthly(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Invalid month parameter")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year parameter")
		return
	}

	resp, err := h.reportService.MonthlyReport(c.Request.Context(), actor, societyID, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// YearToDate returns the summary from January 1st of a year to its end
func (h *ReportHandler) YearToDate(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year parameter")
		return
	}

	resp, err := h.reportService.YearToDateSummary(c.Request.Context(), actor, societyID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Trends returns the trailing 12-month collection series
func (h *ReportHandler) Trends(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	societyID, ok := h.parseUUIDParam(c, "societyId")
	if !ok {
		return
	}

	resp, err := h.reportService.CollectionTrends(c.Request.Context(), actor, societyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
