package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoppulse/internal/config"
	apierrors "shoppulse/internal/errors"
	"shoppulse/internal/middleware"
)

// NewRouter assembles the full route tree with the standard middleware
// chain.
func NewRouter(cfg *config.Config, service DashboardServiceInterface, logger *slog.Logger, version string) http.Handler {
	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.RateLimit(cfg.Security.RateLimit))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", NewDashboardHandler(service, logger, errorHandler).Routes())
		r.Mount("/health", NewHealthHandler(version).Routes())
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
