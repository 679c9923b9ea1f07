package services_test

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/SscSPs/exchange_rates_etl/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_rates_etl/internal/platform/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// --- Fake database connection ---

type execCall struct {
	sql  string
	args []any
}

// fakeTx implements the parts of pgx.Tx used by the loader.
type fakeTx struct {
	pgx.Tx
	execs     []execCall
	failAt    int // index of the Exec call that fails, -1 for none
	execErr   error
	commitErr error
	commits   int
	rollbacks int
	done      bool
}

func newFakeTx() *fakeTx { return &fakeTx{failAt: -1} }

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	idx := len(tx.execs)
	tx.execs = append(tx.execs, execCall{sql: sql, args: args})
	if idx == tx.failAt {
		return pgconn.CommandTag{}, tx.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.commits++
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.done = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rollbacks++
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	return nil
}

// rolledBack reports whether a rollback actually discarded work.
func (tx *fakeTx) rolledBack() bool { return tx.rollbacks > 0 && tx.commits == 0 }

type fakeConn struct {
	tx       *fakeTx
	beginErr error
	closes   int
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return c.tx, nil
}

func (c *fakeConn) Close(context.Context) error {
	c.closes++
	return nil
}

type fakeConnector struct {
	conn       *fakeConn
	connectErr error
	connects   int
}

func (f *fakeConnector) Connect(context.Context) (repositories.Conn, error) {
	f.connects++
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f.conn, nil
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{conn: &fakeConn{tx: newFakeTx()}}
}

// --- Mocks for the pipeline stages ---

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context) (*domain.RawRateDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawRateDocument), args.Error(1)
}

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(ctx context.Context, doc *domain.RawRateDocument) (domain.RateDataset, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateDataset), args.Error(1)
}

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, dataset domain.RateDataset) (int, error) {
	args := m.Called(ctx, dataset)
	return args.Int(0), args.Error(1)
}

type recordingObserver struct {
	stages []domain.Stage
	runs   []domain.RunResult
}

func (o *recordingObserver) ObserveStage(stage domain.Stage, _ time.Duration) {
	o.stages = append(o.stages, stage)
}

func (o *recordingObserver) ObserveRun(result domain.RunResult) {
	o.runs = append(o.runs, result)
}

// logCtx returns a context carrying a JSON logger that writes into buf.
func logCtx(buf *bytes.Buffer) context.Context {
	logger := logging.NewJSONLogger(buf, slog.LevelDebug)
	return logging.WithLogger(context.Background(), logger)
}

func strPtr(s string) *string { return &s }
