package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// ListReports returns the medical reports
func (h *WellnessHandler) ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Reports())
}

// AddReport records an uploaded report
func (h *WellnessHandler) AddReport(c *gin.Context) {
	var req ReportRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	report, err := h.service.AddReport(c.Request.Context(), model.MedicalReport{
		Name:           req.Name,
		Type:           req.Type,
		ReportCategory: req.ReportCategory,
		DoctorName:     req.DoctorName,
		ReportDate:     datePtrToString(req.ReportDate),
		FileURL:        req.FileURL,
	})
	if err != nil {
		respondError(c, err, "Failed to add report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// AnalyzeReport runs the analysis for a report and waits for the merge
func (h *WellnessHandler) AnalyzeReport(c *gin.Context) {
	reportID := c.Param("id")

	analysis, err := h.service.AnalyzeReport(c.Request.Context(), reportID)
	if err != nil {
		h.logger.Warn("report analysis failed",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		respondError(c, err, "Failed to analyze report")
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// DeleteReport removes a report together with its reminders
func (h *WellnessHandler) DeleteReport(c *gin.Context) {
	h.service.DeleteReport(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
