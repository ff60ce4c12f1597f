package handlers

import (
	"bytes"
	"net/http"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/services"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard and reports.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// parseReportRequestParams reads start_date and end_date from the query.
func parseReportRequestParams(c *gin.Context) models.ReportRequestParams {
	return models.ReportRequestParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.Dashboard()
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from reportService.Dashboard")
		respondServiceError(c, err, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) GetReportsOverview(c *gin.Context) {
	overview, err := h.reportService.Overview()
	if err != nil {
		utils.LogError(err, "GetReportsOverview: Error from reportService.Overview")
		respondServiceError(c, err, "Failed to build reports.")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	report, err := h.reportService.SalesReport(parseReportRequestParams(c))
	if err != nil {
		utils.LogError(err, "GetSalesReport: Error from reportService.SalesReport")
		respondServiceError(c, err, "Failed to build sales report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportSalesReport downloads the sales report as CSV.
func (h *ReportHandler) ExportSalesReport(c *gin.Context) {
	report, err := h.reportService.SalesReport(parseReportRequestParams(c))
	if err != nil {
		utils.LogError(err, "ExportSalesReport: Error from reportService.SalesReport")
		respondServiceError(c, err, "Failed to build sales report.")
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteSalesCSV(&buf, report); err != nil {
		utils.LogError(err, "ExportSalesReport: writing CSV")
		respondServiceError(c, err, "Failed to export sales report.")
		return
	}

	filename := "sales_report_" + report.StartDate + "_to_" + report.EndDate + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
