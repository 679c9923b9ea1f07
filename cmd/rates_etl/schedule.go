package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/robfig/cron/v3"
)

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	args := append([]any{slog.String("error", err.Error())}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}

// newScheduler registers job under spec. Overlapping ticks are skipped
// so that at most one run touches the table at a time.
func newScheduler(ctx context.Context, spec string, job func(context.Context) domain.RunResult, logger *slog.Logger) (*cron.Cron, error) {
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(spec, func() {
		result := job(ctx)
		logger.Info("Scheduled run finished",
			slog.String("run_id", result.RunID),
			slog.String("status", string(result.Status)))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return c, nil
}

// runScheduled blocks until ctx is cancelled, then waits for a running job to finish.
func runScheduled(ctx context.Context, spec string, job func(context.Context) domain.RunResult, logger *slog.Logger) error {
	c, err := newScheduler(ctx, spec, job, logger)
	if err != nil {
		return err
	}

	c.Start()
	logger.Info("Scheduler started", slog.String("schedule", spec))

	<-ctx.Done()
	logger.Info("Shutting down scheduler")
	<-c.Stop().Done()
	return nil
}
