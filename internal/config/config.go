// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/healthboard/healthboard/internal/auth"
)

// Config holds the full service configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// TenantID is the Entra ID tenant; empty lets the credential chain decide.
	TenantID string

	// ClientID is the app registration used for interactive sign-in.
	ClientID string

	// GraphBaseURL is the Microsoft Graph base URL.
	GraphBaseURL string

	// GraphScopes are the scopes requested for Graph tokens.
	GraphScopes []string

	// RefreshInterval between automatic fetch cycles.
	RefreshInterval time.Duration

	// AutoRefreshOnStart starts the refresh timer at boot.
	AutoRefreshOnStart bool

	// PrefsPath is where display preferences are persisted.
	PrefsPath string

	// APISigningKey protects the dashboard API; empty disables auth.
	APISigningKey string

	// OTLPEndpoint for trace and metric export.
	OTLPEndpoint string

	// TelemetryEnabled turns on the OTLP exporters.
	TelemetryEnabled bool
}

// FromEnv creates a Config from environment variables.
func FromEnv() Config {
	interval, err := time.ParseDuration(getEnvOrDefault("REFRESH_INTERVAL", "5m"))
	if err != nil || interval <= 0 {
		interval = 5 * time.Minute
	}

	scopes := []string{auth.DefaultGraphScope}
	if raw := os.Getenv("GRAPH_SCOPES"); raw != "" {
		scopes = strings.Fields(raw)
	}

	return Config{
		Port:               getEnvOrDefault("APP_PORT", "8080"),
		Environment:        getEnvOrDefault("APP_ENV", "development"),
		TenantID:           os.Getenv("AZURE_TENANT_ID"),
		ClientID:           os.Getenv("AZURE_CLIENT_ID"),
		GraphBaseURL:       getEnvOrDefault("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
		GraphScopes:        scopes,
		RefreshInterval:    interval,
		AutoRefreshOnStart: getEnvOrDefault("AUTO_REFRESH", "true") != "false",
		PrefsPath:          getEnvOrDefault("PREFS_PATH", "healthboard-prefs.yaml"),
		APISigningKey:      os.Getenv("API_SIGNING_KEY"),
		OTLPEndpoint:       getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:   os.Getenv("OTEL_ENABLED") == "true",
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
