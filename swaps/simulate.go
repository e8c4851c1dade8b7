package swaps

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Model is the fixed fee and timing model of a simulated bridge integration.
type Model struct {
	RateFactor       decimal.Decimal
	GasFeeUSD        decimal.Decimal
	Latency          time.Duration
	EstimatedMinutes int
}

// Simulate waits out the model's latency and prices the request as
// amount * RateFactor - serviceFee. It returns ctx.Err() if the context ends first.
func (m Model) Simulate(ctx context.Context, bridge Bridge, agg Aggregator, req QuoteRequest) (Route, error) {
	if err := Sleep(ctx, m.Latency); err != nil {
		return Route{}, err
	}

	serviceFee := req.ServiceFee()
	out := req.Amount.Mul(m.RateFactor).Sub(serviceFee)
	return NewRoute(bridge, agg, req, out, m.GasFeeUSD, serviceFee, m.EstimatedMinutes), nil
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
