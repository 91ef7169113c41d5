package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healthboard/healthboard/internal/auth"
	"github.com/healthboard/healthboard/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := config.FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.GraphBaseURL)
	assert.Equal(t, []string{auth.DefaultGraphScope}, cfg.GraphScopes)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.AutoRefreshOnStart)
	assert.False(t, cfg.TelemetryEnabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("GRAPH_SCOPES", "scope/a scope/b")
	t.Setenv("AUTO_REFRESH", "false")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := config.FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, []string{"scope/a", "scope/b"}, cfg.GraphScopes)
	assert.False(t, cfg.AutoRefreshOnStart)
	assert.True(t, cfg.TelemetryEnabled)
}

func TestFromEnv_BadIntervalFallsBack(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "often")

	cfg := config.FromEnv()
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
}
