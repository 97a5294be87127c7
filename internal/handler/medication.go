package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// ListMedicines returns the medicines
func (h *WellnessHandler) ListMedicines(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Medicines())
}

// AddMedicine adds a new medicine, not yet taken
func (h *WellnessHandler) AddMedicine(c *gin.Context) {
	var req MedicineRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	med, err := h.service.AddMedicine(c.Request.Context(), model.Medicine{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Time:      req.Time,
		Frequency: req.Frequency,
	})
	if err != nil {
		respondError(c, err, "Failed to add medicine")
		return
	}

	c.JSON(http.StatusCreated, med)
}

// UpdateMedicine patches a medicine. Unknown ids answer 204.
func (h *WellnessHandler) UpdateMedicine(c *gin.Context) {
	var patch model.MedicinePatch
	if !bindJSON(c, &patch, h.logger) {
		return
	}

	medicineID := c.Param("id")
	med, found, err := h.service.UpdateMedicine(c.Request.Context(), medicineID, patch)
	if err != nil {
		respondError(c, err, "Failed to update medicine")
		return
	}
	if !found {
		h.logger.Debug("update for unknown medicine ignored", zap.String("medicine_id", medicineID))
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, med)
}

// ToggleMedicineTaken flips the taken flag of a medicine
func (h *WellnessHandler) ToggleMedicineTaken(c *gin.Context) {
	h.service.ToggleMedicineTaken(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// DeleteMedicine removes a medicine
func (h *WellnessHandler) DeleteMedicine(c *gin.Context) {
	h.service.DeleteMedicine(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
