package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_etl/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/logging"
)

// PipelineService runs extract, transform and load strictly in sequence.
// Stage failures never escape Run: they are logged and reported in the RunResult.
type PipelineService struct {
	BaseService
	extractor   portssvc.ExtractorSvc
	transformer portssvc.TransformerSvc
	loader      portssvc.LoaderSvc
	observer    portssvc.RunObserver
}

var _ portssvc.PipelineSvc = (*PipelineService)(nil)

// PipelineOption configures a PipelineService.
type PipelineOption func(*PipelineService)

// WithRunObserver reports stage timings and run outcomes to observer.
func WithRunObserver(observer portssvc.RunObserver) PipelineOption {
	return func(s *PipelineService) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// NewPipelineService creates a PipelineService.
func NewPipelineService(
	extractor portssvc.ExtractorSvc,
	transformer portssvc.TransformerSvc,
	loader portssvc.LoaderSvc,
	opts ...PipelineOption,
) *PipelineService {
	s := &PipelineService{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		observer:    noopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// pipelineRun tracks the state of one Run call.
type pipelineRun struct {
	stage  domain.Stage
	result domain.RunResult
}

func (r *pipelineRun) advance(next domain.Stage) {
	if r.stage.IsTerminal() {
		panic(fmt.Sprintf("run already ended in %s, cannot move to %s", r.stage, next))
	}
	if !r.stage.CanTransition(next) {
		panic(fmt.Sprintf("invalid stage transition %s -> %s", r.stage, next))
	}
	r.stage = next
}

// Run executes one ETL pass and returns its outcome.
func (s *PipelineService) Run(ctx context.Context) (result domain.RunResult) {
	ctx, runID := logging.WithRun(ctx, s.GetLogger(ctx))
	run := &pipelineRun{
		stage:  domain.StageIdle,
		result: domain.RunResult{RunID: runID, StartedAt: time.Now()},
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = s.fail(ctx, run, fmt.Errorf("panic: %v", rec))
		}
		s.observer.ObserveRun(result)
	}()

	s.LogInfo(ctx, "ETL run started")

	run.advance(domain.StageExtracting)
	var doc *domain.RawRateDocument
	err := s.timed(run.stage, func() (err error) {
		doc, err = s.extractor.Extract(ctx)
		return err
	})
	if err != nil {
		return s.fail(ctx, run, err)
	}

	run.advance(domain.StageTransforming)
	var dataset domain.RateDataset
	err = s.timed(run.stage, func() (err error) {
		dataset, err = s.transformer.Transform(ctx, doc)
		return err
	})
	if err != nil {
		return s.fail(ctx, run, err)
	}

	run.advance(domain.StageLoading)
	var inserted int
	err = s.timed(run.stage, func() (err error) {
		inserted, err = s.loader.Load(ctx, dataset)
		return err
	})
	if err != nil {
		return s.fail(ctx, run, err)
	}

	run.advance(domain.StageDone)
	run.result.Status = domain.RunSucceeded
	run.result.RowsInserted = inserted
	run.result.Duration = time.Since(run.result.StartedAt)

	s.LogInfo(ctx, fmt.Sprintf("Data loaded successfully. Total rows inserted: %d", inserted),
		slog.Int("rows_inserted", inserted),
		slog.Duration("duration", run.result.Duration))
	return run.result
}

func (s *PipelineService) timed(stage domain.Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	s.observer.ObserveStage(stage, time.Since(start))
	return err
}

// fail moves the run to Failed and logs the error with the stage it came from.
func (s *PipelineService) fail(ctx context.Context, run *pipelineRun, err error) domain.RunResult {
	failedStage := run.stage
	run.stage = domain.StageFailed

	run.result.Status = domain.RunFailed
	run.result.FailedStage = failedStage
	run.result.Err = err
	run.result.Duration = time.Since(run.result.StartedAt)

	s.LogError(ctx, err, fmt.Sprintf("ETL process failed during %s stage", failedStage),
		slog.String("stage", string(failedStage)))
	return run.result
}

type noopObserver struct{}

func (noopObserver) ObserveStage(domain.Stage, time.Duration) {}
func (noopObserver) ObserveRun(domain.RunResult)              {}
