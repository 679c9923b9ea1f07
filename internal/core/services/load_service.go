package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/exchange_rates_etl/internal/apperrors"
	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/SscSPs/exchange_rates_etl/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_etl/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// LoadService writes a dataset into Exchange_Rates in a single transaction.
type LoadService struct {
	BaseService
	connector repositories.Connector
	writer    repositories.ExchangeRateWriter
}

var _ portssvc.LoaderSvc = (*LoadService)(nil)

// NewLoadService creates a LoadService.
func NewLoadService(connector repositories.Connector, writer repositories.ExchangeRateWriter) *LoadService {
	return &LoadService{connector: connector, writer: writer}
}

// Load opens a connection, inserts every record in order and commits once.
// The transaction and the connection are released on every return path; a
// transaction that was not committed is rolled back on release.
// On failure nothing is committed and the returned count is 0.
func (s *LoadService) Load(ctx context.Context, dataset domain.RateDataset) (int, error) {
	conn, err := s.connector.Connect(ctx)
	if err != nil {
		return 0, apperrors.NewPersistenceError("connect", err)
	}
	defer func() {
		if cerr := conn.Close(ctx); cerr != nil {
			s.LogError(ctx, cerr, "Error closing database connection")
		}
	}()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, apperrors.NewPersistenceError("begin transaction", err)
	}
	defer func() {
		// no-op after a successful commit
		if rerr := tx.Rollback(ctx); rerr != nil && !errors.Is(rerr, pgx.ErrTxClosed) {
			s.LogError(ctx, rerr, "Error rolling back transaction")
		}
	}()

	for i, record := range dataset {
		if err := s.writer.InsertExchangeRate(ctx, tx, record); err != nil {
			return 0, apperrors.NewRowPersistenceError("insert", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperrors.NewPersistenceError("commit", err)
	}

	s.LogDebug(ctx, "Committed exchange rates", slog.Int("rows", len(dataset)))
	return len(dataset), nil
}
