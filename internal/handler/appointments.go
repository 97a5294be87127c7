package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// ListAppointments returns every appointment
func (h *WellnessHandler) ListAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Appointments())
}

// AddAppointment adds a new appointment
func (h *WellnessHandler) AddAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	apt, err := h.service.AddAppointment(c.Request.Context(), model.Appointment{
		DoctorName: req.DoctorName,
		Specialty:  req.Specialty,
		Date:       datePtrToString(req.Date),
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err, "Failed to add appointment")
		return
	}

	c.JSON(http.StatusCreated, apt)
}

// UpdateAppointment patches an appointment. Unknown ids answer 204.
func (h *WellnessHandler) UpdateAppointment(c *gin.Context) {
	var req AppointmentPatchRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	appointmentID := c.Param("id")
	apt, found, err := h.service.UpdateAppointment(c.Request.Context(), appointmentID, model.AppointmentPatch{
		DoctorName: req.DoctorName,
		Specialty:  req.Specialty,
		Date:       optionalDate(req.Date),
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}
	if !found {
		h.logger.Debug("update for unknown appointment ignored", zap.String("appointment_id", appointmentID))
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, apt)
}

// DeleteAppointment removes an appointment
func (h *WellnessHandler) DeleteAppointment(c *gin.Context) {
	h.service.DeleteAppointment(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
