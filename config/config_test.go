package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "STORAGE_BACKEND", "JWT_SECRET", "REDIS_URL",
		"RECONCILE_DAYS_BEFORE_CHARGE", "RECONCILE_DAYS_AFTER_CHARGE",
		"RECONCILE_TOLERANCE_RATIO", "RECONCILE_MIN_TOLERANCE_AMOUNT", "RECONCILE_RECORD_RUNS",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Empty(t, cfg.JWT.Secret)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 1, cfg.Reconciliation.DaysBeforeCharge)
	assert.Equal(t, 6, cfg.Reconciliation.DaysAfterCharge)
	assert.True(t, decimal.RequireFromString("0.01").Equal(cfg.Reconciliation.ToleranceRatio))
	assert.True(t, decimal.RequireFromString("2").Equal(cfg.Reconciliation.MinToleranceAmount))
	assert.True(t, cfg.Reconciliation.RecordRuns)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", StorageBackendMemory)
	t.Setenv("REDIS_CACHE_TTL", "30s")
	t.Setenv("RECONCILE_DAYS_AFTER_CHARGE", "3")
	t.Setenv("RECONCILE_TOLERANCE_RATIO", "0.02")
	t.Setenv("RECONCILE_RECORD_RUNS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageBackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Reconciliation.RecordRuns)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)

	matching := cfg.Reconciliation.MatchingConfig()
	assert.Equal(t, 3, matching.DaysAfterCharge)
	assert.True(t, decimal.RequireFromString("0.02").Equal(matching.ToleranceRatio))
}

func TestLoad_IgnoresUnparsableValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("RECONCILE_MIN_TOLERANCE_AMOUNT", "two")
	t.Setenv("RECONCILE_RECORD_RUNS", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, decimal.RequireFromString("2").Equal(cfg.Reconciliation.MinToleranceAmount))
	assert.True(t, cfg.Reconciliation.RecordRuns)
}
