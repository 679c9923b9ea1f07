package repositories

import (
	"context"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateWriter defines write operations for the Exchange_Rates table
type ExchangeRateWriter interface {
	// InsertExchangeRate appends one row inside the given transaction.
	InsertExchangeRate(ctx context.Context, tx pgx.Tx, record domain.RateRecord) error
}
