// Package stargate quotes stablecoin transfers over Stargate. Quotes are simulated
// from a fixed fee model until the Stargate API is integrated.
package stargate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const Name = "stargate"

// Stargate pools only hold these symbols.
var supportedSymbols = map[string]bool{"USDC": true, "USDT": true}

// DefaultModel is 0.2% bridge fee/slippage, $5.50 gas and ~5 minute settlement.
func DefaultModel() swaps.Model {
	return swaps.Model{
		RateFactor:       decimal.RequireFromString("0.998"),
		GasFeeUSD:        decimal.RequireFromString("5.50"),
		Latency:          300 * time.Millisecond,
		EstimatedMinutes: 5,
	}
}

type Provider struct {
	model  swaps.Model
	logger *zap.Logger
}

func NewProvider(model swaps.Model, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{model: model, logger: logger.Named(Name)}
}

func (p *Provider) Name() string {
	return Name
}

// Eligible reports whether the pair is a cross-chain stablecoin transfer.
func (p *Provider) Eligible(from, to registry.Asset) bool {
	return supportedSymbols[from.Symbol] && supportedSymbols[to.Symbol] && from.Chain.ID != to.Chain.ID
}

func (p *Provider) Quote(ctx context.Context, req swaps.QuoteRequest) (swaps.Route, error) {
	if !p.Eligible(req.From, req.To) {
		return swaps.Route{}, swaps.ErrIneligible
	}

	p.logger.Debug("getting quote", zap.String("amount", req.Amount.String()), zap.Stringer("from", req.From), zap.Stringer("to", req.To))

	bridge := swaps.FindBridge("Stargate")
	return p.model.Simulate(ctx, bridge, swaps.Aggregator{ID: "stargate-direct", Name: bridge.Name}, req)
}
