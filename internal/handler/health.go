package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// pingTimeout bounds the database check so a hung pool cannot stall the probe.
const pingTimeout = 2 * time.Second

// Pinger is the database dependency of the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service health, including database reachability.
type HealthHandler struct {
	version string
	db      Pinger
	started time.Time
}

// NewHealthHandler creates a HealthHandler that reports the given version.
func NewHealthHandler(version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		version: version,
		db:      db,
		started: time.Now(),
	}
}

// HealthCheck serves GET and HEAD /health. A failed database ping reports
// degraded with 503 so load balancers rotate the instance out.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	database := "ok"
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		status = "degraded"
		database = "unavailable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"version":   h.version,
		"database":  database,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
