package handler

import (
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/middleware"
	"go.uber.org/zap"
)

// Handlers groups the endpoint implementations served by the router
type Handlers struct {
	Health   *HealthHandler
	Wellness *WellnessHandler
	Insights *InsightsHandler
	GDPR     *GDPRHandler
}

// RouterOptions configure the middleware chain
type RouterOptions struct {
	// AllowedOrigins for CORS; empty allows every origin
	AllowedOrigins []string
	// Spec enables request validation when set
	Spec *openapi3.T
	// SlowRequestThreshold enables slow request warnings when positive
	SlowRequestThreshold time.Duration
}

// NewRouter builds the gin engine with the middleware chain and every route
func NewRouter(h Handlers, opts RouterOptions, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()

	// Recovery must be first
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))
	if opts.SlowRequestThreshold > 0 {
		r.Use(middleware.SlowRequestLoggingMiddleware(logger, opts.SlowRequestThreshold))
	}

	if opts.Spec != nil {
		validator, err := middleware.OpenAPIValidationMiddleware(opts.Spec, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create request validator: %w", err)
		}
		r.Use(validator)
	}

	RegisterRoutes(r, h)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes attaches every endpoint to r
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", h.Health.GetHealth)

	v1 := r.Group("/api/v1")

	v1.GET("/profile", h.Health.GetProfile)
	v1.GET("/state", h.Wellness.GetState)

	v1.GET("/checklist", h.Wellness.ListChecklist)
	v1.POST("/checklist", h.Wellness.AddChecklistItem)
	v1.POST("/checklist/:id/toggle", h.Wellness.ToggleChecklistItem)
	v1.DELETE("/checklist/:id", h.Wellness.DeleteChecklistItem)

	v1.GET("/medicines", h.Wellness.ListMedicines)
	v1.POST("/medicines", h.Wellness.AddMedicine)
	v1.PATCH("/medicines/:id", h.Wellness.UpdateMedicine)
	v1.POST("/medicines/:id/toggle", h.Wellness.ToggleMedicineTaken)
	v1.DELETE("/medicines/:id", h.Wellness.DeleteMedicine)

	v1.GET("/appointments", h.Wellness.ListAppointments)
	v1.POST("/appointments", h.Wellness.AddAppointment)
	v1.PATCH("/appointments/:id", h.Wellness.UpdateAppointment)
	v1.DELETE("/appointments/:id", h.Wellness.DeleteAppointment)

	v1.GET("/reports", h.Wellness.ListReports)
	v1.POST("/reports", h.Wellness.AddReport)
	v1.POST("/reports/:id/analyze", h.Wellness.AnalyzeReport)
	v1.DELETE("/reports/:id", h.Wellness.DeleteReport)

	v1.GET("/reminders", h.Wellness.ListReminders)
	v1.POST("/reminders/:id/toggle", h.Wellness.ToggleReminder)
	v1.DELETE("/reminders/:id", h.Wellness.DeleteReminder)

	v1.GET("/metrics", h.Wellness.GetMetrics)
	v1.POST("/metrics/mood", h.Wellness.LogMood)
	v1.POST("/metrics/sleep", h.Wellness.LogSleep)
	v1.POST("/metrics/nutrition", h.Wellness.LogNutrition)
	v1.POST("/metrics/activity", h.Wellness.LogActivity)

	v1.GET("/preferences", h.Wellness.GetPreferences)
	v1.PUT("/preferences", h.Wellness.UpdatePreferences)

	v1.GET("/insights", h.Insights.GetInsights)
	v1.GET("/insights/digest", h.Insights.PreviewDigest)
	v1.POST("/insights/digest", h.Insights.SendDigest)
	v1.POST("/notifications/medicines", h.Insights.SendMedicineReminder)
	v1.POST("/notifications/appointments", h.Insights.SendAppointmentReminder)
	v1.GET("/summary/pdf", h.Insights.GetSummaryPDF)

	v1.GET("/export", h.GDPR.ExportData)
	v1.DELETE("/data", h.GDPR.EraseData)
	v1.GET("/audit", h.GDPR.ListAuditEntries)
}
