package services

import (
	"context"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
)

// ExtractorSvc retrieves the raw rate document from the provider.
type ExtractorSvc interface {
	Extract(ctx context.Context) (*domain.RawRateDocument, error)
}

// TransformerSvc reshapes a raw document into table rows.
type TransformerSvc interface {
	Transform(ctx context.Context, doc *domain.RawRateDocument) (domain.RateDataset, error)
}

// LoaderSvc persists a dataset and returns the number of inserted rows.
type LoaderSvc interface {
	Load(ctx context.Context, dataset domain.RateDataset) (int, error)
}

// PipelineSvc runs one extract → transform → load pass.
type PipelineSvc interface {
	Run(ctx context.Context) domain.RunResult
}

// RunObserver receives stage timings and run outcomes, e.g. for metrics.
type RunObserver interface {
	ObserveStage(stage domain.Stage, elapsed time.Duration)
	ObserveRun(result domain.RunResult)
}
