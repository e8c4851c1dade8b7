package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const deleteTransactionByHash = `DELETE FROM transactions WHERE tx_hash = ?`

func (q *Queries) DeleteTransactionByHash(ctx context.Context, txHash string) error {
	_, err := q.db.ExecContext(ctx, deleteTransactionByHash, txHash)
	return err
}

const insertTransaction = `INSERT INTO transactions (
    tx_hash, from_symbol, from_chain, to_symbol, to_chain, from_amount, to_amount,
    sender, receiver, bridge, service_fee, gas_fee, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertTransaction(ctx context.Context, arg Transaction) error {
	_, err := q.db.ExecContext(ctx, insertTransaction,
		arg.TxHash, arg.FromSymbol, arg.FromChain, arg.ToSymbol, arg.ToChain,
		arg.FromAmount, arg.ToAmount, arg.Sender, arg.Receiver, arg.Bridge,
		arg.ServiceFee, arg.GasFee, arg.Status, arg.CreatedAt,
	)
	return err
}

const trimTransactions = `DELETE FROM transactions WHERE id NOT IN (
    SELECT id FROM transactions ORDER BY id DESC LIMIT ?
)`

func (q *Queries) TrimTransactions(ctx context.Context, keep int64) error {
	_, err := q.db.ExecContext(ctx, trimTransactions, keep)
	return err
}

const listTransactions = `SELECT id, tx_hash, from_symbol, from_chain, to_symbol, to_chain, from_amount, to_amount,
    sender, receiver, bridge, service_fee, gas_fee, status, created_at
FROM transactions ORDER BY id DESC LIMIT ?`

func (q *Queries) ListTransactions(ctx context.Context, limit int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID, &i.TxHash, &i.FromSymbol, &i.FromChain, &i.ToSymbol, &i.ToChain,
			&i.FromAmount, &i.ToAmount, &i.Sender, &i.Receiver, &i.Bridge,
			&i.ServiceFee, &i.GasFee, &i.Status, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTransactionByHash = `SELECT id, tx_hash, from_symbol, from_chain, to_symbol, to_chain, from_amount, to_amount,
    sender, receiver, bridge, service_fee, gas_fee, status, created_at
FROM transactions WHERE tx_hash = ?`

func (q *Queries) GetTransactionByHash(ctx context.Context, txHash string) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransactionByHash, txHash)
	var i Transaction
	err := row.Scan(
		&i.ID, &i.TxHash, &i.FromSymbol, &i.FromChain, &i.ToSymbol, &i.ToChain,
		&i.FromAmount, &i.ToAmount, &i.Sender, &i.Receiver, &i.Bridge,
		&i.ServiceFee, &i.GasFee, &i.Status, &i.CreatedAt,
	)
	return i, err
}

type InsertAPIRequestParams struct {
	Provider        string
	Method          string
	Url             string
	RequestHeaders  sql.NullString
	RequestBody     sql.NullString
	ResponseStatus  sql.NullInt64
	ResponseHeaders sql.NullString
	ResponseBody    sql.NullString
	DurationMs      sql.NullInt64
	Error           sql.NullString
}

const insertAPIRequest = `INSERT INTO api_requests (
    provider, method, url, request_headers, request_body, response_status,
    response_headers, response_body, duration_ms, error, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertAPIRequest(ctx context.Context, arg InsertAPIRequestParams) error {
	_, err := q.db.ExecContext(ctx, insertAPIRequest,
		arg.Provider, arg.Method, arg.Url, arg.RequestHeaders, arg.RequestBody, arg.ResponseStatus,
		arg.ResponseHeaders, arg.ResponseBody, arg.DurationMs, arg.Error, time.Now().UTC(),
	)
	return err
}

const listAPIRequestsByProvider = `SELECT id, provider, method, url, request_headers, request_body, response_status,
    response_headers, response_body, duration_ms, error, created_at
FROM api_requests WHERE provider = ? ORDER BY id DESC LIMIT ?`

func (q *Queries) ListAPIRequestsByProvider(ctx context.Context, provider string, limit int64) ([]ApiRequest, error) {
	rows, err := q.db.QueryContext(ctx, listAPIRequestsByProvider, provider, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ApiRequest
	for rows.Next() {
		var i ApiRequest
		if err := rows.Scan(
			&i.ID, &i.Provider, &i.Method, &i.Url, &i.RequestHeaders, &i.RequestBody, &i.ResponseStatus,
			&i.ResponseHeaders, &i.ResponseBody, &i.DurationMs, &i.Error, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
