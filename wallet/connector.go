package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RaghavSood/bridgeswap/addrcheck"
)

// ErrRejected is returned when the user or wallet declines a connection.
var ErrRejected = errors.New("connection rejected")

// WalletError is a failure to connect to a wallet provider.
type WalletError struct {
	Provider string
	Err      error
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet %s: %v", e.Provider, e.Err)
}

func (e *WalletError) Unwrap() error {
	return e.Err
}

// Account is a connected wallet address.
type Account struct {
	Provider Provider `json:"provider"`
	Address  string   `json:"address"`
}

// Connector retrieves accounts from one wallet provider.
type Connector interface {
	Provider() Provider
	RequestAccounts(ctx context.Context) ([]string, error)
}

// Connect asks c for its accounts and returns the first one. Connection failures
// and malformed addresses are reported as *WalletError.
func Connect(ctx context.Context, c Connector) (Account, error) {
	p := c.Provider()
	accounts, err := c.RequestAccounts(ctx)
	if err != nil {
		return Account{}, &WalletError{Provider: p.ID, Err: err}
	}
	if len(accounts) == 0 {
		return Account{}, &WalletError{Provider: p.ID, Err: errors.New("no accounts returned")}
	}
	if err := addrcheck.Validate(accounts[0], p.Standard); err != nil {
		return Account{}, &WalletError{Provider: p.ID, Err: err}
	}
	return Account{Provider: p, Address: accounts[0]}, nil
}

// StaticConnector returns fixed addresses, e.g. an address supplied by an API client.
type StaticConnector struct {
	provider  Provider
	addresses []string
}

func NewStaticConnector(provider Provider, addresses ...string) *StaticConnector {
	return &StaticConnector{provider: provider, addresses: addresses}
}

func (s *StaticConnector) Provider() Provider {
	return s.provider
}

func (s *StaticConnector) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.addresses) == 0 {
		return nil, ErrRejected
	}
	return s.addresses, nil
}

// Set is the collection of connectors available to a front-end, keyed by provider ID.
type Set struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

func NewSet(connectors ...Connector) *Set {
	s := &Set{connectors: make(map[string]Connector, len(connectors))}
	for _, c := range connectors {
		s.connectors[c.Provider().ID] = c
	}
	return s
}

// Add registers or replaces the connector for its provider.
func (s *Set) Add(c Connector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectors[c.Provider().ID] = c
}

// Connect connects through the connector registered for providerID. A provider
// in the catalogue without a connector is reported as not installed.
func (s *Set) Connect(ctx context.Context, providerID string) (Account, error) {
	if _, err := FindProvider(providerID); err != nil {
		return Account{}, err
	}

	s.mu.RLock()
	c, ok := s.connectors[providerID]
	s.mu.RUnlock()
	if !ok {
		return Account{}, &WalletError{Provider: providerID, Err: errors.New("wallet not installed")}
	}
	return Connect(ctx, c)
}
