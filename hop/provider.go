// Package hop quotes transfers over Hop Protocol between Ethereum and its rollups.
// Quotes are simulated from a fixed fee model.
package hop

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const Name = "hop"

var (
	supportedChains  = map[string]bool{"ethereum": true, "polygon": true, "optimism": true, "arbitrum": true}
	supportedSymbols = map[string]bool{"USDC": true, "USDT": true}
)

// DefaultModel is 0.1% bridge fee, $3.20 gas and ~2 minute settlement.
func DefaultModel() swaps.Model {
	return swaps.Model{
		RateFactor:       decimal.RequireFromString("0.999"),
		GasFeeUSD:        decimal.RequireFromString("3.20"),
		Latency:          450 * time.Millisecond,
		EstimatedMinutes: 2,
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

// Eligible requires both chains to be Hop chains and a stablecoin source.
// The destination symbol is not restricted.
func (p *Provider) Eligible(from, to registry.Asset) bool {
	if from.Chain.ID == to.Chain.ID {
		return false
	}
	return supportedChains[from.Chain.ID] && supportedChains[to.Chain.ID] && supportedSymbols[from.Symbol]
}

func (p *Provider) Quote(ctx context.Context, req swaps.QuoteRequest) (swaps.Route, error) {
	if !p.Eligible(req.From, req.To) {
		return swaps.Route{}, swaps.ErrIneligible
	}

	p.logger.Debug("getting quote", zap.String("amount", req.Amount.String()), zap.Stringer("from", req.From), zap.Stringer("to", req.To))

	bridge := swaps.FindBridge("Hop")
	return p.model.Simulate(ctx, bridge, swaps.Aggregator{ID: "hop-direct", Name: bridge.Name}, req)
}
