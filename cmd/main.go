package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/okian/trainerdesk/internal/adapters/backend"
	"github.com/okian/trainerdesk/internal/adapters/http/api"
	"github.com/okian/trainerdesk/internal/adapters/http/site"
	"github.com/okian/trainerdesk/internal/adapters/http/swagger"
	app "github.com/okian/trainerdesk/internal/app"
	"github.com/okian/trainerdesk/internal/config"
	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	sentryFlushTimeout    = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is configured from cfg, so it is not available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithFile(cfg.LogFile)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.Error(ctx, "sentry init failed", logger.Error(err))
		}
		defer sentry.Flush(sentryFlushTimeout)
	}

	srv, svc, err := buildServer(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build server", logger.Error(err))
		return
	}

	// Initial load; failures surface as empty views and are retried on demand.
	svc.Start(ctx)

	go startSystemMetricsUpdater(ctx)

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildServer wires the backend client, the view service and every HTTP
// surface into an unstarted http.Server.
func buildServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.Server, *app.Service, error) {
	client, err := backend.New(cfg.BackendURL,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithResetURL(cfg.ResetURL),
		backend.WithCustomerCache(cfg.CustomerCacheMB, cfg.CustomerCacheTTL),
		backend.WithLogger(log.Named("backend")),
	)
	if err != nil {
		return nil, nil, err
	}

	svc := app.New(client,
		app.WithLogger(log.Named("service")),
		app.WithGoalMinutes(cfg.GoalMinutes),
		app.WithChartPalette(cfg.ChartPalette),
		app.WithLocation(cfg.Location()),
		app.WithNoticeCapacity(cfg.NoticeCapacity),
	)

	apiServer := api.NewServer(svc, svc,
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithLogger(log.Named("http")),
	)
	r := apiServer.Router()
	apiServer.Register(r)
	swagger.Register(ctx, r)
	site.Register(ctx, r)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           otelhttp.NewHandler(r, "trainerdesk"),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}, svc, nil
}

// startSystemMetricsUpdater refreshes process gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
