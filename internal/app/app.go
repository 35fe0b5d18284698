// Package app wires the dashboard web application: configuration, logging,
// the data service, the chi router and the HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"sportsight/internal/config"
	apperrors "sportsight/internal/errors"
	"sportsight/internal/infrastructure"
	custommw "sportsight/internal/middleware"
	"sportsight/internal/services"
	transporthttp "sportsight/internal/transport/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Application holds the assembled dashboard server.
type Application struct {
	Config *config.Config
	Paths  *config.Paths
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	frontendFS fs.FS
	registry   *prometheus.Registry
}

// NewApplication builds the application from configuration and the embedded
// frontend filesystem. A nil frontendFS disables static serving.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve data paths", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewStorageError("failed to create data directories", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		frontendFS: frontendFS,
		registry:   prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	if a.Config.RateLimit.Enabled {
		r.Use(custommw.RateLimiter(a.Config.RateLimit.RPS, a.Config.RateLimit.Burst))
	}

	metrics := custommw.NewMetrics(a.registry)
	r.Use(metrics.Handler)

	dataService := services.NewDataService(a.Paths, a.Logger)
	dataHandler := transporthttp.NewDataHandler(dataService, a.Logger)
	healthHandler := transporthttp.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", healthHandler.Healthz)
		r.Mount("/data", dataHandler.Routes())
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	if a.frontendFS != nil {
		r.Handle("/*", http.FileServer(http.FS(a.frontendFS)))
	}

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until an interrupt or server error,
// then shuts down gracefully within the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer infrastructure.CloseLogFile()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("dashboard server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down dashboard server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("dashboard server stopped")
	return nil
}
