package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/ecoscore/internal/adapters/http/api"
	"github.com/okian/ecoscore/internal/adapters/http/site"
	"github.com/okian/ecoscore/internal/adapters/http/swagger"
	"github.com/okian/ecoscore/internal/adapters/repository"
	"github.com/okian/ecoscore/internal/adapters/suggest"
	app "github.com/okian/ecoscore/internal/app"
	"github.com/okian/ecoscore/internal/config"
	"github.com/okian/ecoscore/internal/domain/scoring"
	"github.com/okian/ecoscore/pkg/logger"
	"github.com/okian/ecoscore/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 40 * time.Second // above the router's request timeout
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Initialize logging with defaults until the configured format is known
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "ecoscore exited with error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.InitWithOptions(logger.Options{Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, loggerInstance)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// newService wires the store, suggestion generator and scorer defaults.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	provider, err := suggest.Resolve(suggest.ProviderConfig{
		Name:             cfg.SuggestProvider,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		AnthropicAPIKey:  cfg.AnthropicAPIKey,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure suggestions: %w", err)
	}
	generator := suggest.NewGenerator(provider,
		suggest.WithSettings(suggest.Settings{
			Model:       cfg.SuggestModel,
			Temperature: cfg.SuggestTemperature,
			MaxTokens:   cfg.SuggestMaxTokens,
		}),
		suggest.WithTimeout(time.Duration(cfg.SuggestTimeoutMS)*time.Millisecond),
	)

	store := repository.NewMemoryStore(ctx, repository.WithOnAppend(metrics.UpdateStoreSize))

	return app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithSuggester(generator),
		app.WithDefaultWeights(scoring.Weights{
			GWP:         cfg.DefaultWeightGWP,
			Circularity: cfg.DefaultWeightCircularity,
			Cost:        cfg.DefaultWeightCost,
		}),
	), nil
}

// newHandler builds the router with the API, docs and page routes.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) chi.Router {
	r := api.NewRouter(cfg.CORSAllowedOrigins)

	api.NewServer(svc, svc, log).Register(ctx, r)
	swagger.Register(ctx, r)
	site.Register(ctx, r)

	return r
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
