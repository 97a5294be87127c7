package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"go.uber.org/zap"
)

// defaultAuditLimit is used when GET /audit has no limit parameter
const defaultAuditLimit = 20

// GDPRHandler implements the data export, erase and audit endpoints
type GDPRHandler struct {
	service *service.PrivacyService
	audit   *audit.Logger
	logger  *zap.Logger
}

// NewGDPRHandler creates a new GDPRHandler
func NewGDPRHandler(service *service.PrivacyService, auditLogger *audit.Logger, logger *zap.Logger) *GDPRHandler {
	return &GDPRHandler{
		service: service,
		audit:   auditLogger,
		logger:  logger,
	}
}

// ExportData returns every collection, the preferences and the profile
func (h *GDPRHandler) ExportData(c *gin.Context) {
	export := h.service.ExportData(c.Request.Context())

	c.Header("Content-Disposition", `attachment; filename="wellness-export.json"`)
	c.JSON(http.StatusOK, export)
}

// EraseData deletes every stored key and empties the collections
func (h *GDPRHandler) EraseData(c *gin.Context) {
	if err := h.service.EraseData(c.Request.Context()); err != nil {
		h.logger.Error("failed to erase data", zap.Error(err))
		respondError(c, err, "Failed to erase data")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuditEntries returns the most recent audit entries, newest first
func (h *GDPRHandler) ListAuditEntries(c *gin.Context) {
	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > audit.DefaultRecentCapacity {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    CodeValidation,
				Message: "Invalid limit",
				Details: stringPtr("limit must be an integer between 1 and " + strconv.Itoa(audit.DefaultRecentCapacity)),
			})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, h.audit.Recent(limit))
}
