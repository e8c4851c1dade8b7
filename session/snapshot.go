package session

import (
	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/wallet"
)

// Snapshot is a point-in-time copy of the session state for rendering.
type Snapshot struct {
	ID            string              `json:"id"`
	Seq           uint64              `json:"seq"` // increases with every state change
	Amount        string              `json:"amount"`
	From          registry.Asset      `json:"from"`
	To            registry.Asset      `json:"to"`
	Receiver      string              `json:"receiver"`
	ReceiverValid bool                `json:"receiver_valid"`
	Account       *wallet.Account     `json:"account,omitempty"`
	QuoteState    QuoteState          `json:"quote_state"`
	Pending       bool                `json:"pending"` // fetch scheduled, debounce running
	Routes        []swaps.RankedRoute `json:"routes"`
	Selected      int                 `json:"selected"`
	QuoteError    string              `json:"quote_error,omitempty"`
	Submission    SubmissionState     `json:"submission"`
	TxHash        string              `json:"tx_hash,omitempty"`
	Transaction   *db.Transaction     `json:"transaction,omitempty"`
	SubmitError   string              `json:"submit_error,omitempty"`
	Blocker       string              `json:"blocker,omitempty"`
}

// SelectedRoute returns the selected route, if any.
func (s Snapshot) SelectedRoute() (swaps.RankedRoute, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Routes) {
		return swaps.RankedRoute{}, false
	}
	return s.Routes[s.Selected], true
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Seq:           s.seq,
		Amount:        s.amount,
		From:          s.from,
		To:            s.to,
		Receiver:      s.receiver,
		ReceiverValid: s.receiver != "" && s.receiverValidLocked(),
		QuoteState:    s.state,
		Pending:       s.pending,
		Routes:        swaps.Rank(s.routes),
		Selected:      s.selected,
		Submission:    s.submission,
		TxHash:        s.txHash,
		Blocker:       s.blockerLocked(),
	}
	if s.account != nil {
		acct := *s.account
		snap.Account = &acct
	}
	if s.quoteErr != nil {
		snap.QuoteError = s.quoteErr.Error()
	}
	if s.lastTx != nil {
		tx := *s.lastTx
		snap.Transaction = &tx
	}
	if s.submitErr != nil {
		snap.SubmitError = s.submitErr.Error()
	}
	return snap
}
