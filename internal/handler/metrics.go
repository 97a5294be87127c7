package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMetrics returns the four wellness series
func (h *WellnessHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Metrics())
}

// LogMood records today's mood
func (h *WellnessHandler) LogMood(c *gin.Context) {
	var req MoodRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	h.logged(c, h.service.LogMood(c.Request.Context(), req.Value, req.Emoji))
}

// LogSleep records today's hours of sleep
func (h *WellnessHandler) LogSleep(c *gin.Context) {
	var req SleepRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	h.logged(c, h.service.LogSleep(c.Request.Context(), req.Hours))
}

// LogNutrition records today's nutrition score
func (h *WellnessHandler) LogNutrition(c *gin.Context) {
	var req NutritionRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	h.logged(c, h.service.LogNutrition(c.Request.Context(), req.Score))
}

// LogActivity records today's step count
func (h *WellnessHandler) LogActivity(c *gin.Context) {
	var req ActivityRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	h.logged(c, h.service.LogActivity(c.Request.Context(), req.Steps))
}

func (h *WellnessHandler) logged(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err, "Failed to log metric")
		return
	}
	c.Status(http.StatusNoContent)
}
