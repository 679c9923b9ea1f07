package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopJob(context.Context) domain.RunResult {
	return domain.RunResult{Status: domain.RunSucceeded}
}

func TestNewScheduler_ValidSpecs(t *testing.T) {
	logger := logging.NewJSONLogger(&bytes.Buffer{}, slog.LevelInfo)
	for _, spec := range []string{"@daily", "@every 1h", "30 6 * * *", "0 */4 * * 1-5"} {
		t.Run(spec, func(t *testing.T) {
			c, err := newScheduler(context.Background(), spec, noopJob, logger)
			require.NoError(t, err)
			assert.Len(t, c.Entries(), 1)
		})
	}
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	logger := logging.NewJSONLogger(&bytes.Buffer{}, slog.LevelInfo)
	_, err := newScheduler(context.Background(), "every tuesday", noopJob, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestRunScheduled_RunsJobAndStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, slog.LevelInfo)

	ran := make(chan struct{}, 10)
	job := func(context.Context) domain.RunResult {
		ran <- struct{}{}
		return domain.RunResult{RunID: "r1", Status: domain.RunSucceeded}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runScheduled(ctx, "@every 1s", job, logger) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled job did not run")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	l := cronLogger{logger: logging.NewJSONLogger(&buf, slog.LevelDebug)}

	l.Info("wake", "now", "x")
	l.Error(errors.New("boom"), "panic", "entry", 1)

	out := buf.String()
	assert.Contains(t, out, "cron: wake")
	assert.Contains(t, out, "cron: panic")
	assert.Contains(t, out, "boom")
}
