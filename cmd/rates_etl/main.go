package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/adapters/database/pgsql"
	"github.com/SscSPs/exchange_rates_etl/internal/adapters/exchangeapi"
	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/SscSPs/exchange_rates_etl/internal/core/services"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/config"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/logging"
	"github.com/SscSPs/exchange_rates_etl/pkg/database"
	"github.com/SscSPs/exchange_rates_etl/pkg/metrics"
)

const metricsPushTimeout = 10 * time.Second

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Invalid LOG_LEVEL, using info", slog.String("error", err.Error()))
	}
	logger = logging.NewJSONLogger(os.Stdout, level)
	slog.SetDefault(logger)

	connConfig, err := database.NewPgxConnConfig(cfg.DatabaseURL, cfg.DBServer, cfg.DBName)
	if err != nil {
		logger.Error("Failed to build database configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metricsManager := metrics.NewManager(metrics.WithPushgateway(cfg.MetricsPushgatewayURL, cfg.MetricsJobName))

	pipeline := services.NewPipelineService(
		exchangeapi.NewClient(cfg.APIBaseURL, cfg.APITimeout),
		services.NewTransformService(),
		services.NewLoadService(pgsql.NewConnector(connConfig), pgsql.NewExchangeRateRepository(cfg.DBTable)),
		services.WithRunObserver(metricsManager),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	job := func(ctx context.Context) domain.RunResult {
		result := pipeline.Run(ctx)
		pushMetrics(ctx, metricsManager, logger)
		return result
	}

	if cfg.Schedule == "" {
		result := job(ctx)
		if result.Failed() && cfg.FailOnError {
			stop()
			os.Exit(1)
		}
		return
	}

	if err := runScheduled(ctx, cfg.Schedule, job, logger); err != nil {
		logger.Error("Scheduler failed", slog.String("schedule", cfg.Schedule), slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func pushMetrics(ctx context.Context, m *metrics.Manager, logger *slog.Logger) {
	if !m.PushEnabled() {
		return
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsPushTimeout)
	defer cancel()
	if err := m.Push(pushCtx); err != nil {
		logger.Warn("Failed to push metrics", slog.String("error", err.Error()))
	}
}
