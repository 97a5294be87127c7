package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// WellnessHandler implements the collection endpoints
type WellnessHandler struct {
	service *service.WellnessService
	logger  *zap.Logger
}

// NewWellnessHandler creates a new WellnessHandler
func NewWellnessHandler(service *service.WellnessService, logger *zap.Logger) *WellnessHandler {
	return &WellnessHandler{
		service: service,
		logger:  logger,
	}
}

// GetState returns a snapshot of every collection
func (h *WellnessHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Snapshot())
}

// ListChecklist returns the checklist items
func (h *WellnessHandler) ListChecklist(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Checklist())
}

// AddChecklistItem adds a checklist item dated today
func (h *WellnessHandler) AddChecklistItem(c *gin.Context) {
	var req ChecklistItemRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	item, err := h.service.AddChecklistItem(c.Request.Context(), model.ChecklistItem{
		Label:     req.Label,
		Category:  req.Category,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(c, err, "Failed to add checklist item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ToggleChecklistItem flips the completed flag of a checklist item
func (h *WellnessHandler) ToggleChecklistItem(c *gin.Context) {
	h.service.ToggleChecklistItem(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// DeleteChecklistItem removes a checklist item
func (h *WellnessHandler) DeleteChecklistItem(c *gin.Context) {
	h.service.DeleteChecklistItem(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListReminders returns the analysis reminders
func (h *WellnessHandler) ListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.AnalysisReminders())
}

// ToggleReminder flips the completed flag of an analysis reminder
func (h *WellnessHandler) ToggleReminder(c *gin.Context) {
	h.service.ToggleReminderComplete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// DeleteReminder removes an analysis reminder
func (h *WellnessHandler) DeleteReminder(c *gin.Context) {
	h.service.DeleteAnalysisReminder(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetPreferences returns the user preferences
func (h *WellnessHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Preferences())
}

// UpdatePreferences applies the fields present in the request body
func (h *WellnessHandler) UpdatePreferences(c *gin.Context) {
	var req PreferencesRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	ctx := c.Request.Context()
	if req.UserEmail != nil {
		if err := h.service.SetUserEmail(ctx, *req.UserEmail); err != nil {
			respondError(c, err, "Failed to update email")
			return
		}
	}
	if req.EmailInsightsEnabled != nil {
		h.service.SetEmailInsightsEnabled(ctx, *req.EmailInsightsEnabled)
	}
	if req.MedicineRemindersEnabled != nil {
		h.service.SetMedicineRemindersEnabled(ctx, *req.MedicineRemindersEnabled)
	}
	if req.AppointmentRemindersEnabled != nil {
		h.service.SetAppointmentRemindersEnabled(ctx, *req.AppointmentRemindersEnabled)
	}

	c.JSON(http.StatusOK, h.service.Preferences())
}
