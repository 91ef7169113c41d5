// Package api provides the HTTP API for the healthboard service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/healthboard/healthboard/internal/api/handler"
	"github.com/healthboard/healthboard/internal/api/middleware"
	"github.com/healthboard/healthboard/internal/auth"
	"github.com/healthboard/healthboard/internal/session"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// Tokens guards the API when set; nil disables authentication for
	// single-user deployments.
	Tokens *auth.APITokenService

	Sessions *session.Controller
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "healthboard"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Sessions)
	dashboardHandler := handler.NewDashboardHandler(cfg.Sessions)

	authMiddleware := middleware.Auth(cfg.Tokens)

	refreshRateLimit := middleware.RateLimitByIP(middleware.RefreshRateLimit)   // 10 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Dashboard endpoints (authenticated when a signing key is set)
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(standardRateLimit).Get("/", dashboardHandler.GetDashboard)
			r.With(standardRateLimit).Get("/services/{service}", dashboardHandler.GetServiceDetail)

			// Manual refresh hits Graph, so it gets the tight limit
			r.With(refreshRateLimit).Post("/refresh", dashboardHandler.Refresh)

			r.Get("/auto-refresh", dashboardHandler.GetAutoRefresh)
			r.Put("/auto-refresh", dashboardHandler.SetAutoRefresh)
			r.Get("/display-mode", dashboardHandler.GetDisplayMode)
			r.Put("/display-mode", dashboardHandler.SetDisplayMode)
		})
	})

	return r
}
