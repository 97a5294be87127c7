package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"go.uber.org/zap"
)

const (
	serviceName    = "wellness-companion"
	serviceVersion = "1.0.0"
)

// Pinger checks that the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler implements the health and profile endpoints
type HealthHandler struct {
	store    Pinger
	profiles profile.Provider
	logger   *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. store may be nil for
// backends without a connectivity check.
func NewHealthHandler(store Pinger, profiles profile.Provider, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:    store,
		profiles: profiles,
		logger:   logger,
	}
}

// GetHealth reports whether the service and its backing store are up
func (h *HealthHandler) GetHealth(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			h.logger.Error("health check failed: storage unreachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:  "unhealthy",
				Storage: "disconnected",
				Service: serviceName,
				Version: serviceVersion,
				Error:   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Storage: "connected",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// GetProfile returns the read-only user profile
func (h *HealthHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profiles.Profile(c.Request.Context()))
}
