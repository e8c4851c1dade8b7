package swaps

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RaghavSood/bridgeswap/fees"
	"github.com/RaghavSood/bridgeswap/registry"
)

// ErrIneligible is returned by a provider that does not serve the requested pair.
// It is an expected outcome, not a failure.
var ErrIneligible = errors.New("pair not served by provider")

// QuoteRequest is the swap intent handed to every provider in one aggregation run.
type QuoteRequest struct {
	Amount                 decimal.Decimal
	From                   registry.Asset
	To                     registry.Asset
	FeeBPS                 int
	FeeCollectorConfigured bool
}

// ServiceFee is the fee charged on the request's input amount.
func (r QuoteRequest) ServiceFee() decimal.Decimal {
	return fees.ComputeServiceFee(r.Amount, r.FeeBPS, r.FeeCollectorConfigured)
}

// CrossChain reports whether source and destination live on different chains.
func (r QuoteRequest) CrossChain() bool {
	return r.From.Chain.ID != r.To.Chain.ID
}

// Provider is the interface that quote providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g. "stargate").
	Name() string

	// Quote prices the request. It returns ErrIneligible when the provider does
	// not serve the pair and any other error on failure. Implementations must not
	// touch shared state.
	Quote(ctx context.Context, req QuoteRequest) (Route, error)
}

// ProviderError is an unexpected failure of a single provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AggregationError is returned when every provider in a run failed.
type AggregationError struct {
	Message string
	Errors  []error
}

func (e *AggregationError) Error() string {
	return "failed to get quotes: " + e.Message
}

func (e *AggregationError) Unwrap() []error {
	return e.Errors
}
