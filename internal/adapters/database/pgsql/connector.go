package pgsql

import (
	"context"

	"github.com/SscSPs/exchange_rates_etl/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_rates_etl/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Connector opens one pgx connection per load.
type Connector struct {
	config *pgx.ConnConfig
}

var _ repositories.Connector = (*Connector)(nil)

// NewConnector creates a Connector for the given configuration.
func NewConnector(config *pgx.ConnConfig) *Connector {
	return &Connector{config: config}
}

// Connect opens and pings a new connection. The caller owns closing it.
func (c *Connector) Connect(ctx context.Context) (repositories.Conn, error) {
	conn, err := database.Connect(ctx, c.config.Copy())
	if err != nil {
		return nil, err
	}
	return conn, nil
}
