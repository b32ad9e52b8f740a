package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"jobpulse/internal/config"
	apierrors "jobpulse/internal/errors"
	"jobpulse/internal/dataset"
	"jobpulse/internal/infrastructure"
	customMiddleware "jobpulse/internal/middleware"
	"jobpulse/internal/services"
	handlers "jobpulse/internal/transport/http"
	"jobpulse/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	ErrorHandler  *apierrors.ErrorHandler
	Services      *ServiceContainer

	serverErr chan error
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Store      *dataset.LazyStore
	Employment *services.EmploymentService
	Health     *services.HealthService
}

// NewApplication loads configuration, initializes the process logger and
// wires the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires an application from cfg. Nothing is started.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.Path))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromTelemetry(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		serverErr:     make(chan error, 1),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	store := dataset.NewStore(a.Config.Dataset, a.Logger, a.Metrics)

	employment, err := services.NewEmploymentService(store, a.Config.Analytics, a.Logger, a.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize employment service: %w", err)
	}

	a.Services = &ServiceContainer{
		Store:      store,
		Employment: employment,
		Health:     services.NewHealthService(store, a.Logger),
	}
	return nil
}

// setupRouter builds the route tree.
// Middleware order: RequestID → RealIP → OTel → Logger → Recoverer → headers → CORS → rate limit.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
		if err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}
		r.Use(customMiddleware.BusinessMetricsMiddleware(a.Metrics))

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
				a.ErrorHandler,
			).Handler)
		}

		r.Route("/api", a.setupAPIRoutes)
	})

	// Scrapes skip the rate limiter and request logging
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	a.Router = r
}

// setupAPIRoutes registers everything under /api
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Use(render.SetContentType(render.ContentTypeJSON))

	health := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", health.HealthCheck)
		r.Get("/ready", health.ReadinessCheck)
		r.Get("/live", health.LivenessCheck)
		r.Get("/stats", health.SystemStats)
	})
	r.Get("/version", health.Version)

	employment := handlers.NewEmploymentHandler(
		a.Services.Employment,
		a.Logger,
		a.ErrorHandler,
		a.Config.Analytics.DefaultPageSize,
		a.Config.Analytics.TopTitles,
	)

	// Exports stream the whole filtered set and get a longer deadline
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ExportTimeout, a.ErrorHandler))
		r.Get("/employment-data/export", employment.Export)
	})

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.ErrorHandler))
		r.Use(customMiddleware.Compress(5))
		r.Mount("/employment-data", employment.Routes())
	})
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start preloads the dataset when configured and starts serving in the
// background. A load failure is logged and the server still starts with an
// empty dataset.
func (a *Application) Start(ctx context.Context) error {
	if a.Config.Dataset.Preload {
		if err := a.Services.Store.Preload(ctx); err != nil {
			a.Logger.WarnContext(ctx, "Dataset preload failed, serving an empty dataset",
				slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Starting HTTP server",
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serverErr <- err
		}
	}()
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted or the listener fails
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		a.Logger.Info("Received interrupt signal")
	case err := <-a.serverErr:
		a.Logger.Error("Server error", slog.String("error", err.Error()))
		_ = a.Stop(context.Background())
		return fmt.Errorf("server failed: %w", err)
	}

	return a.Stop(context.Background())
}
