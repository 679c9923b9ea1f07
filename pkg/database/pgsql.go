package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const defaultConnectTimeout = 10 * time.Second

// ConnString builds a keyword/value DSN from a server and database name.
// No credentials are included: the user and password come from the
// environment (PGUSER, PGPASSFILE) or from peer/GSS authentication.
func ConnString(server, dbName string) string {
	parts := make([]string, 0, 2)
	if server != "" {
		parts = append(parts, "host="+quoteValue(server))
	}
	if dbName != "" {
		parts = append(parts, "dbname="+quoteValue(dbName))
	}
	return strings.Join(parts, " ")
}

// quoteValue quotes a DSN value per libpq keyword/value rules.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// NewPgxConnConfig parses the connection configuration used for every load.
// databaseURL takes precedence over server and dbName when set.
func NewPgxConnConfig(databaseURL, server, dbName string) (*pgx.ConnConfig, error) {
	connString := databaseURL
	if connString == "" {
		connString = ConnString(server, dbName)
	}
	if connString == "" {
		return nil, fmt.Errorf("database connection settings cannot be empty")
	}

	// pgx.ParseConfig also reads environment variables like PGUSER, PGPORT, etc.
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = defaultConnectTimeout
	}
	return config, nil
}

// Connect opens a single connection and verifies it with a ping.
func Connect(ctx context.Context, config *pgx.ConnConfig) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx) // Close the connection if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("Connected to PostgreSQL database.",
		slog.String("host", config.Host),
		slog.String("database", config.Database))
	return conn, nil
}
