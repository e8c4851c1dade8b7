package db

import (
	"database/sql"
	"time"
)

// Transaction is a receipt of a completed swap.
type Transaction struct {
	ID         int64     `json:"-"`
	TxHash     string    `json:"tx_hash"`
	FromSymbol string    `json:"from_symbol"`
	FromChain  string    `json:"from_chain"`
	ToSymbol   string    `json:"to_symbol"`
	ToChain    string    `json:"to_chain"`
	FromAmount string    `json:"from_amount"`
	ToAmount   string    `json:"to_amount"`
	Sender     string    `json:"sender"`
	Receiver   string    `json:"receiver"`
	Bridge     string    `json:"bridge"`
	ServiceFee string    `json:"service_fee"`
	GasFee     string    `json:"gas_fee"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type ApiRequest struct {
	ID              int64
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
	CreatedAt       time.Time
}
