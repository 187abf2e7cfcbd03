package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a connectivity check on a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and readiness probes
type SystemHandler struct {
	BaseHandler
	appName string
	version string
	checks  map[string]Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		version: version,
		checks:  make(map[string]Pinger),
	}
}

// AddCheck registers a named dependency for the readiness probe
func (h *SystemHandler) AddCheck(name string, pinger Pinger) *SystemHandler {
	h.checks[name] = pinger
	return h
}

// Health reports liveness without touching any dependency
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
	})
}

// Ready reports readiness by pinging every registered dependency.
// Any failing dependency turns the probe into a 503.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "ready"
	results := make(map[string]string, len(h.checks))
	for name, pinger := range h.checks {
		if err := pinger.Ping(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			overall = "degraded"
			continue
		}
		results[name] = "ok"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": results,
	})
}
