// Package main provides the entrypoint for the healthboard server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthboard/healthboard/internal/api"
	"github.com/healthboard/healthboard/internal/api/middleware"
	"github.com/healthboard/healthboard/internal/auth"
	"github.com/healthboard/healthboard/internal/config"
	"github.com/healthboard/healthboard/internal/health/graph"
	"github.com/healthboard/healthboard/internal/prefs"
	"github.com/healthboard/healthboard/internal/session"
	"github.com/healthboard/healthboard/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "healthboard"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting healthboard")

	cfg := config.FromEnv()

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	fetchMetrics, err := session.NewFetchMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize fetch metrics")
		os.Exit(1)
	}

	// Sign in to Entra ID; non-interactive credentials first, browser fallback
	tokens, err := auth.NewCredentialProvider(auth.CredentialProviderConfig{
		TenantID: cfg.TenantID,
		ClientID: cfg.ClientID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize credentials")
	}
	log.Info().Msg("credential provider initialized")

	// Display preferences survive restarts
	store, err := prefs.NewFileStore(cfg.PrefsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PrefsPath).Msg("failed to open preference store")
	}
	log.Info().Str("path", cfg.PrefsPath).Msg("preference store initialized")

	graphClient := graph.NewClient(graph.ClientConfig{
		BaseURL: cfg.GraphBaseURL,
		Tokens:  tokens,
		Scopes:  cfg.GraphScopes,
	})

	sessions := session.NewController(session.ControllerConfig{
		Fetcher:         graphClient,
		Tokens:          tokens,
		Prefs:           store,
		Logger:          log,
		RefreshInterval: cfg.RefreshInterval,
		Metrics:         fetchMetrics,
	})

	// First cycle happens at boot so the dashboard is warm; failure is
	// reported on the grid, not fatal here.
	if err := sessions.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial fetch failed, dashboard starts empty")
	}
	if cfg.AutoRefreshOnStart {
		sessions.StartAutoRefresh(ctx)
		log.Info().Dur("interval", cfg.RefreshInterval).Msg("auto-refresh started")
	}
	defer sessions.StopAutoRefresh()

	// API tokens are optional; without a signing key the API is open
	var apiTokens *auth.APITokenService
	if cfg.APISigningKey != "" {
		apiTokens = auth.NewAPITokenService(auth.APITokenConfig{
			SigningKey: cfg.APISigningKey,
		})
		log.Info().Msg("API authentication enabled")
	} else {
		log.Warn().Msg("no API signing key set, dashboard API is unauthenticated")
	}

	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Tokens:      apiTokens,
		Sessions:    sessions,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
