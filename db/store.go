package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// HistoryLimit caps the number of transactions kept.
const HistoryLimit = 50

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps Queries with connection management and helpers.
type Store struct {
	*Queries
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Async api_requests inserts race history writes on a single file.
	conn.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{
		Queries: New(conn),
		conn:    conn,
	}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// StatusSuccess is the only status kept in history.
const StatusSuccess = "success"

var ErrNotFound = errors.New("transaction not found")

// SaveTransaction records tx as the newest history entry. An existing entry with
// the same hash is replaced and the log is trimmed to HistoryLimit entries. Only
// successful swaps are recorded; an empty status counts as success.
func (s *Store) SaveTransaction(ctx context.Context, tx Transaction) error {
	if tx.TxHash == "" {
		return fmt.Errorf("transaction has no hash")
	}
	if tx.Status == "" {
		tx.Status = StatusSuccess
	}
	if tx.Status != StatusSuccess {
		return fmt.Errorf("transaction %s has status %q, only %q is recorded", tx.TxHash, tx.Status, StatusSuccess)
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	tx.CreatedAt = tx.CreatedAt.UTC()

	dbTx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	q := s.WithTx(dbTx)
	if err := q.DeleteTransactionByHash(ctx, tx.TxHash); err != nil {
		return fmt.Errorf("removing duplicate %s: %w", tx.TxHash, err)
	}
	if err := q.InsertTransaction(ctx, tx); err != nil {
		return fmt.Errorf("inserting %s: %w", tx.TxHash, err)
	}
	if err := q.TrimTransactions(ctx, HistoryLimit); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return dbTx.Commit()
}

// GetTransactions returns the history, most recent first.
func (s *Store) GetTransactions(ctx context.Context) ([]Transaction, error) {
	txs, err := s.ListTransactions(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return txs, nil
}

// GetTransaction looks a history entry up by hash.
func (s *Store) GetTransaction(ctx context.Context, txHash string) (Transaction, error) {
	tx, err := s.GetTransactionByHash(ctx, txHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, fmt.Errorf("%s: %w", txHash, ErrNotFound)
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("loading %s: %w", txHash, err)
	}
	return tx, nil
}

// RecentAPIRequests returns up to limit logged provider calls, newest first.
func (s *Store) RecentAPIRequests(ctx context.Context, provider string, limit int64) ([]ApiRequest, error) {
	reqs, err := s.ListAPIRequestsByProvider(ctx, provider, limit)
	if err != nil {
		return nil, fmt.Errorf("listing %s requests: %w", provider, err)
	}
	return reqs, nil
}
