package swaps

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Status is the settlement state of a submitted swap.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ExecuteResult holds the result of submitting a swap.
type ExecuteResult struct {
	TxHash string
}

// Executor submits swaps and reports their settlement status.
type Executor interface {
	// Execute broadcasts the swap for route from sender to receiver.
	Execute(ctx context.Context, route Route, sender, receiver string) (ExecuteResult, error)

	// CheckStatus returns the settlement status of a broadcast transaction.
	CheckStatus(ctx context.Context, txHash string) (Status, error)
}

// SimulatedExecutor stands in for real signing and broadcasting. Execute waits
// BroadcastDelay and returns a random 32-byte hash; the transaction reports
// completed once ConfirmDelay has passed since broadcast. A hash is forgotten
// after it is reported completed, so later checks treat it as unknown.
type SimulatedExecutor struct {
	BroadcastDelay time.Duration
	ConfirmDelay   time.Duration

	mu        sync.Mutex
	submitted map[string]time.Time
	now       func() time.Time
}

// NewSimulatedExecutor creates an executor with the given delays.
func NewSimulatedExecutor(broadcastDelay, confirmDelay time.Duration) *SimulatedExecutor {
	return &SimulatedExecutor{
		BroadcastDelay: broadcastDelay,
		ConfirmDelay:   confirmDelay,
		submitted:      make(map[string]time.Time),
		now:            time.Now,
	}
}

func (e *SimulatedExecutor) Execute(ctx context.Context, route Route, sender, receiver string) (ExecuteResult, error) {
	if err := Sleep(ctx, e.BroadcastDelay); err != nil {
		return ExecuteResult{}, err
	}

	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ExecuteResult{}, fmt.Errorf("generating tx hash: %w", err)
	}
	hash := common.BytesToHash(b[:]).Hex()

	e.mu.Lock()
	e.submitted[hash] = e.now()
	e.mu.Unlock()

	return ExecuteResult{TxHash: hash}, nil
}

func (e *SimulatedExecutor) CheckStatus(ctx context.Context, txHash string) (Status, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	at, ok := e.submitted[txHash]
	if !ok {
		return StatusFailed, fmt.Errorf("unknown transaction %s", txHash)
	}

	if e.now().Sub(at) < e.ConfirmDelay {
		return StatusPending, nil
	}
	delete(e.submitted, txHash)
	return StatusCompleted, nil
}
