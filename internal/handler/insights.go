package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"go.uber.org/zap"
)

// InsightsHandler implements the insights, notification and summary
// endpoints
type InsightsHandler struct {
	insights *service.InsightsService
	summary  *service.SummaryService
	logger   *zap.Logger
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(insights *service.InsightsService, summary *service.SummaryService, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		insights: insights,
		summary:  summary,
		logger:   logger,
	}
}

// GetInsights returns the derived insights
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.GetInsights(c.Request.Context()))
}

// PreviewDigest returns the digest content without sending it
func (h *InsightsHandler) PreviewDigest(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.GetDigest(c.Request.Context()))
}

// SendDigest emails the digest to the stored user email
func (h *InsightsHandler) SendDigest(c *gin.Context) {
	digest, err := h.insights.SendDigest(c.Request.Context())
	if err != nil {
		h.respondSendError(c, err, "Failed to send insights digest")
		return
	}

	c.JSON(http.StatusOK, digest)
}

// SendMedicineReminder emails the medicines not yet taken
func (h *InsightsHandler) SendMedicineReminder(c *gin.Context) {
	sent, err := h.insights.SendMedicineReminder(c.Request.Context())
	if err != nil {
		h.respondSendError(c, err, "Failed to send medicine reminder")
		return
	}

	c.JSON(http.StatusOK, NotificationResponse{Sent: sent})
}

// SendAppointmentReminder emails the upcoming appointments
func (h *InsightsHandler) SendAppointmentReminder(c *gin.Context) {
	sent, err := h.insights.SendAppointmentReminder(c.Request.Context())
	if err != nil {
		h.respondSendError(c, err, "Failed to send appointment reminder")
		return
	}

	c.JSON(http.StatusOK, NotificationResponse{Sent: sent})
}

// GetSummaryPDF renders the wellness summary document
func (h *InsightsHandler) GetSummaryPDF(c *gin.Context) {
	pdfBytes, err := h.summary.GenerateSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to generate summary PDF", zap.Error(err))
		respondError(c, err, "Failed to generate summary PDF")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="wellness-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// respondSendError answers 400 for a missing email and 502 when the mail
// provider rejected the message
func (h *InsightsHandler) respondSendError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrEmailRequired) {
		respondError(c, err, message)
		return
	}

	h.logger.Error(message, zap.Error(err))
	_ = c.Error(fmt.Errorf("email delivery: %w", err))
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Code:    CodeEmailDelivery,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}
