package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Conn is a single scoped database connection. *pgx.Conn satisfies it.
type Conn interface {
	// Begin starts the transaction that all inserts of a run go through.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Connector opens a fresh connection for each load.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}
