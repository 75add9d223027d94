// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// DependencyCheck reports whether a backing service is reachable.
type DependencyCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	storageBackend string
	checks         map[string]DependencyCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Storage      string            `json:"storage"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// checks maps a dependency name, such as "database" or "redis", to its check.
func NewHealthController(storageBackend string, checks map[string]DependencyCheck) *HealthController {
	return &HealthController{
		storageBackend: storageBackend,
		checks:         checks,
	}
}

// Check handles GET /health requests.
// Any unreachable dependency turns the status to degraded with 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	dependencies := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			slog.Warn("Health check failed", "dependency", name, "error", err)
			dependencies[name] = "down"
			status = "degraded"
			continue
		}
		dependencies[name] = "up"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:       status,
		Storage:      h.storageBackend,
		Dependencies: dependencies,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
