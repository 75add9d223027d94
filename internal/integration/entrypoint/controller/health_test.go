package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkHealth(t *testing.T, h *HealthController) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Check)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthController_Check(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("reports ok when every dependency is up", func(t *testing.T) {
		code, body := checkHealth(t, NewHealthController("database", map[string]DependencyCheck{
			"database": up,
			"redis":    up,
		}))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "database", body.Storage)
		assert.Equal(t, map[string]string{"database": "up", "redis": "up"}, body.Dependencies)
	})

	t.Run("reports degraded when a dependency is down", func(t *testing.T) {
		code, body := checkHealth(t, NewHealthController("file", map[string]DependencyCheck{
			"database": up,
			"redis":    down,
		}))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Dependencies["redis"])
	})

	t.Run("is ok without dependencies", func(t *testing.T) {
		code, body := checkHealth(t, NewHealthController("memory", nil))

		assert.Equal(t, http.StatusOK, code)
		assert.Empty(t, body.Dependencies)
	})
}
