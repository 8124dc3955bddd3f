package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shoppulse/internal/config"
	"shoppulse/internal/dataset"
	"shoppulse/internal/infrastructure"
	"shoppulse/internal/services"
	transport "shoppulse/internal/transport/http"
)

// Name is the service name reported in traces and logs.
const Name = "shoppulse"

// Version is the release version, overridable at build time with
// -ldflags "-X shoppulse/internal/app.Version=...".
var Version = "1.0.0"

// Application wires configuration, the dataset store, the dashboard service
// and the HTTP server together.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *dataset.Store
	Service *services.DashboardService
	Server  *http.Server

	stopTracing infrastructure.TracingShutdown
}

// NewApplication builds the application from configuration and environment.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", Name),
		slog.String("version", Version),
		slog.String("data_dir", cfg.Data.Dir))

	stopTracing, err := infrastructure.InitializeTracing(Name, Version, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	loader := dataset.NewLoader(cfg.Data.Dir, logger)
	store := dataset.NewStore(loader, logger)
	service := services.NewDashboardService(store, logger, cfg.Dashboard.TopCategories)

	router := transport.NewRouter(cfg, service, logger, Version)

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Service: service,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		stopTracing: stopTracing,
	}

	return app, nil
}

// Start launches the HTTP server and warms the dataset cache. Server errors
// cancel the supplied context through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Warm the cache so the first request does not pay the load cost.
	// A failure here is not fatal: the data directory may be populated
	// after startup and the store retries on the next request.
	if _, err := a.Store.Data(ctx); err != nil {
		a.Logger.WarnContext(ctx, "dataset warm-up failed",
			slog.String("error", err.Error()),
			slog.String("data_dir", a.Config.Data.Dir))
	}

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully shuts the server and tracing down.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.stopTracing != nil {
		if err := a.stopTracing(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
