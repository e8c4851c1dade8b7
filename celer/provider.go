// Package celer quotes transfers over Celer cBridge. Quotes are simulated from a
// fixed fee model.
package celer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const Name = "celer"

// DefaultModel is 0.15% bridge fee, $4.00 gas and ~10 minute settlement.
func DefaultModel() swaps.Model {
	return swaps.Model{
		RateFactor:       decimal.RequireFromString("0.9985"),
		GasFeeUSD:        decimal.RequireFromString("4.00"),
		Latency:          600 * time.Millisecond,
		EstimatedMinutes: 10,
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

// Eligible accepts any cross-chain pair.
func (p *Provider) Eligible(from, to registry.Asset) bool {
	return from.Chain.ID != to.Chain.ID
}

func (p *Provider) Quote(ctx context.Context, req swaps.QuoteRequest) (swaps.Route, error) {
	if !p.Eligible(req.From, req.To) {
		return swaps.Route{}, swaps.ErrIneligible
	}

	p.logger.Debug("getting quote", zap.String("amount", req.Amount.String()), zap.Stringer("from", req.From), zap.Stringer("to", req.To))

	bridge := swaps.FindBridge("Celer")
	return p.model.Simulate(ctx, bridge, swaps.Aggregator{ID: "celer-direct", Name: bridge.Name}, req)
}
