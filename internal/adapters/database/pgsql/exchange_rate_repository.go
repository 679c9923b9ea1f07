package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/SscSPs/exchange_rates_etl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateRepository appends rows to the Exchange_Rates table.
type ExchangeRateRepository struct {
	insertSQL string
}

// Ensure ExchangeRateRepository implements repositories.ExchangeRateWriter
var _ repositories.ExchangeRateWriter = (*ExchangeRateRepository)(nil)

// NewExchangeRateRepository creates a repository writing to table.
// A dotted name such as "fx.Exchange_Rates" is treated as schema-qualified.
func NewExchangeRateRepository(table string) *ExchangeRateRepository {
	return &ExchangeRateRepository{insertSQL: insertStatement(table)}
}

// InsertSQL returns the parameterized statement used for every row.
func (r *ExchangeRateRepository) InsertSQL() string {
	return r.insertSQL
}

func insertStatement(table string) string {
	columns := make([]string, len(domain.RateColumns))
	placeholders := make([]string, len(domain.RateColumns))
	for i, col := range domain.RateColumns {
		columns[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// InsertExchangeRate inserts one record with all four values bound positionally.
func (r *ExchangeRateRepository) InsertExchangeRate(ctx context.Context, tx pgx.Tx, record domain.RateRecord) error {
	tag, err := tx.Exec(ctx, r.insertSQL, record.Values()...)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate %s/%s: %w", record.BaseCurrency, record.TargetCurrency, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("insert of exchange rate %s/%s affected %d rows", record.BaseCurrency, record.TargetCurrency, tag.RowsAffected())
	}
	return nil
}
