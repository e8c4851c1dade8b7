// Package session drives one user's swap: intent edits, debounced quote fetches,
// route selection and submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/addrcheck"
	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/metrics"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/wallet"
)

var (
	ErrNotReady = errors.New("swap not ready")
	ErrNoRoute  = errors.New("route not found")
	ErrClosed   = errors.New("session closed")
)

// Aggregator produces ranked routes for an intent.
type Aggregator interface {
	GetQuotes(ctx context.Context, amount string, from, to registry.Asset) ([]swaps.Route, error)
}

// History persists completed swaps.
type History interface {
	SaveTransaction(ctx context.Context, tx db.Transaction) error
}

type Config struct {
	// Debounce delays a quote fetch after an intent edit.
	Debounce time.Duration
	// PollInterval is the first settlement status poll interval; later polls back off.
	PollInterval time.Duration
	// SettlementTimeout bounds the wait for a submitted swap to settle. Zero falls
	// back to the backoff package default of 15 minutes.
	SettlementTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Debounce:          500 * time.Millisecond,
		PollInterval:      500 * time.Millisecond,
		SettlementTimeout: 2 * time.Minute,
	}
}

// Session is safe for concurrent use. Listeners registered with OnChange are
// called after every state change, outside the session lock, one at a time and
// in the order the changes were made. A snapshot overtaken by a newer one that
// was already delivered is dropped. Listeners must not edit the session.
type Session struct {
	id      string
	cfg     Config
	agg     Aggregator
	exec    swaps.Executor
	history History
	logger  *zap.Logger

	ctx      context.Context
	shutdown context.CancelFunc

	mu        sync.Mutex
	listeners []func(Snapshot)
	closed    bool
	seq       uint64

	// notifyMu serializes listener calls; delivered is the last Seq handed out.
	notifyMu  sync.Mutex
	delivered uint64

	// intent
	amount   string
	from     registry.Asset
	to       registry.Asset
	receiver string
	account  *wallet.Account

	// quotes; gen identifies the current intent
	gen      uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	pending  bool
	state    QuoteState
	routes   []swaps.Route
	selected int
	quoteErr error

	// submission
	submission SubmissionState
	txHash     string
	lastTx     *db.Transaction
	submitErr  error
}

// New creates a session. history may be nil.
func New(agg Aggregator, exec swaps.Executor, history History, cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:         id,
		cfg:        cfg,
		agg:        agg,
		exec:       exec,
		history:    history,
		logger:     logger.Named("session").With(zap.String("session", id)),
		ctx:        ctx,
		shutdown:   cancel,
		state:      QuotesIdle,
		selected:   -1,
		submission: SubmissionIdle,
	}
}

func (s *Session) ID() string {
	return s.id
}

// OnChange registers fn to receive a snapshot after every state change.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(slices.Clone(s.listeners), fn)
}

// update applies fn under the lock and notifies listeners.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	snap, listeners := s.changedLocked()
	s.mu.Unlock()
	s.deliver(snap, listeners)
}

// changedLocked stamps a new sequence number and returns the snapshot to publish.
func (s *Session) changedLocked() (Snapshot, []func(Snapshot)) {
	s.seq++
	return s.snapshotLocked(), s.listeners
}

func (s *Session) deliver(snap Snapshot, listeners []func(Snapshot)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Seq <= s.delivered {
		return
	}
	s.delivered = snap.Seq
	for _, l := range listeners {
		l(snap)
	}
}

// SetAmount replaces the input amount and restarts the quote cycle.
func (s *Session) SetAmount(amount string) {
	s.update(func() {
		s.amount = strings.TrimSpace(amount)
		s.invalidateLocked(true)
	})
}

// SetFromAsset selects the source asset. Picking the current destination swaps
// source and destination.
func (s *Session) SetFromAsset(a registry.Asset) {
	s.update(func() {
		if a.Same(s.to) {
			s.to = s.from
		}
		s.from = a
		s.invalidateLocked(true)
	})
}

// SetToAsset selects the destination asset. Picking the current source swaps
// source and destination.
func (s *Session) SetToAsset(a registry.Asset) {
	s.update(func() {
		if a.Same(s.from) {
			s.from = s.to
		}
		s.to = a
		s.invalidateLocked(true)
	})
}

// SetReceiver sets the destination address. It does not affect quotes.
func (s *Session) SetReceiver(address string) {
	s.update(func() {
		s.receiver = strings.TrimSpace(address)
	})
}

// ConnectWallet attaches a connected account. An empty receiver defaults to the
// account address.
func (s *Session) ConnectWallet(acct wallet.Account) {
	s.update(func() {
		s.account = &acct
		if s.receiver == "" {
			s.receiver = acct.Address
		}
	})
	s.logger.Info("wallet connected", zap.String("provider", acct.Provider.ID), zap.String("address", acct.Address))
}

// Disconnect detaches the wallet. The receiver address is kept.
func (s *Session) Disconnect() {
	s.update(func() {
		s.account = nil
	})
}

// SelectRoute overrides the selected route by index into the current route set.
func (s *Session) SelectRoute(i int) error {
	var err error
	s.update(func() {
		if i < 0 || i >= len(s.routes) {
			err = fmt.Errorf("%w: index %d of %d", ErrNoRoute, i, len(s.routes))
			return
		}
		s.selected = i
	})
	return err
}

// SelectBridge selects the first route travelling over the named bridge.
func (s *Session) SelectBridge(name string) error {
	var err error
	s.update(func() {
		for i, r := range s.routes {
			if strings.EqualFold(r.Bridge.Name, name) || strings.EqualFold(r.Aggregator.ID, name) {
				s.selected = i
				return
			}
		}
		err = fmt.Errorf("%w: %s", ErrNoRoute, name)
	})
	return err
}

// Refresh fetches quotes for the current intent immediately, skipping the
// debounce, and returns once they are in.
func (s *Session) Refresh(ctx context.Context) (Snapshot, error) {
	var (
		gen    uint64
		closed bool
		ready  bool
	)
	s.update(func() {
		closed = s.closed
		if closed {
			return
		}
		s.invalidateLocked(false)
		gen = s.gen
		_, ok := swaps.ParseAmount(s.amount)
		ready = ok && s.hasPairLocked()
	})
	if closed {
		return Snapshot{}, ErrClosed
	}
	if !ready {
		return s.Snapshot(), nil
	}

	err := s.fetch(ctx, gen)
	return s.Snapshot(), err
}

// invalidateLocked drops the current route set, cancels any scheduled or
// in-flight fetch and, when schedule is set and the intent is complete, starts
// a new debounce timer.
func (s *Session) invalidateLocked(schedule bool) {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.routes = nil
	s.selected = -1
	s.quoteErr = nil
	s.state = QuotesIdle
	s.pending = false

	if !schedule || s.closed || !s.hasPairLocked() {
		return
	}
	if _, ok := swaps.ParseAmount(s.amount); !ok {
		return
	}

	gen := s.gen
	s.pending = true
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.fetch(s.ctx, gen)
	})
	s.logger.Debug("quote fetch scheduled", zap.Uint64("gen", gen), zap.String("amount", s.amount))
}

func (s *Session) hasPairLocked() bool {
	return s.from.Symbol != "" && s.to.Symbol != ""
}

var errSuperseded = errors.New("intent superseded")

// fetch runs one quote fetch for generation gen. Results are committed only if
// gen is still current when they arrive.
func (s *Session) fetch(parent context.Context, gen uint64) error {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return errSuperseded
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.pending = false
	s.timer = nil
	s.state = QuotesLoading
	amount, from, to := s.amount, s.from, s.to
	snap, listeners := s.changedLocked()
	s.mu.Unlock()
	s.deliver(snap, listeners)

	routes, err := s.agg.GetQuotes(ctx, amount, from, to)
	cancel()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		metrics.QuoteFetchesSuperseded.Inc()
		s.logger.Debug("discarding superseded quotes", zap.Uint64("gen", gen))
		return errSuperseded
	}
	s.cancel = nil
	switch {
	case err != nil:
		s.state = QuotesError
		s.quoteErr = err
		s.logger.Warn("quote fetch failed", zap.Error(err))
	case len(routes) == 0:
		s.state = QuotesEmpty
	default:
		s.state = QuotesReady
		s.routes = routes
		s.selected = 0
	}
	snap, listeners = s.changedLocked()
	s.mu.Unlock()
	s.deliver(snap, listeners)
	return err
}

// SubmitBlocker returns the first reason the swap cannot be submitted, or ""
// when it can.
func (s *Session) SubmitBlocker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockerLocked()
}

func (s *Session) blockerLocked() string {
	if s.account == nil {
		return ReasonConnectWallet
	}
	if _, ok := swaps.ParseAmount(s.amount); !ok {
		return ReasonEnterAmount
	}
	if s.receiver == "" {
		return ReasonEnterReceiver
	}
	if !s.receiverValidLocked() {
		return ReasonInvalidReceiver
	}
	if s.pending || s.state == QuotesLoading {
		return ReasonFindingRoutes
	}
	if s.state == QuotesError {
		return ReasonTryAgain
	}
	if len(s.routes) == 0 {
		return ReasonNoRoutes
	}
	if s.selected < 0 || s.selected >= len(s.routes) {
		return ReasonSelectRoute
	}
	return ""
}

func (s *Session) receiverValidLocked() bool {
	return s.to.Symbol != "" && addrcheck.IsValidAddress(s.receiver, s.to.Chain.WalletStandard)
}

// Close cancels pending work. Further edits are ignored by the quote cycle.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.shutdown()
}
