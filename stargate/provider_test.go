package stargate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

func asset(t *testing.T, notation string) registry.Asset {
	t.Helper()
	a, err := registry.Default.Resolve(notation)
	require.NoError(t, err)
	return a
}

func testProvider(t *testing.T) *Provider {
	model := DefaultModel()
	model.Latency = 0
	return NewProvider(model, zaptest.NewLogger(t))
}

func TestEligible(t *testing.T) {
	p := testProvider(t)

	assert.True(t, p.Eligible(asset(t, "USDT@ethereum"), asset(t, "USDC@arbitrum")))
	assert.True(t, p.Eligible(asset(t, "USDC@solana"), asset(t, "USDT@bsc")))
	assert.False(t, p.Eligible(asset(t, "USDT@ethereum"), asset(t, "USDC@ethereum")))
}

func TestQuote(t *testing.T) {
	p := testProvider(t)

	route, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount:                 decimal.NewFromInt(100),
		From:                   asset(t, "USDT@ethereum"),
		To:                     asset(t, "USDC@arbitrum"),
		FeeBPS:                 50,
		FeeCollectorConfigured: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "99.300000", route.ToAmount)
	assert.Equal(t, "0.993", route.Rate.String())
	assert.Equal(t, "$5.50", route.GasFeeDisplay())
	assert.Equal(t, "$0.50", route.ServiceFeeDisplay())
	assert.Equal(t, 5, route.EstimatedMinutes)
	assert.Equal(t, "Stargate", route.Bridge.Name)
	assert.Equal(t, "stargate-direct", route.Aggregator.ID)
}

func TestQuoteIneligible(t *testing.T) {
	p := testProvider(t)

	_, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount: decimal.NewFromInt(100),
		From:   asset(t, "USDT@ethereum"),
		To:     asset(t, "USDC@ethereum"),
	})
	assert.ErrorIs(t, err, swaps.ErrIneligible)
}

func TestQuoteRespectsContext(t *testing.T) {
	p := NewProvider(DefaultModel(), zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Quote(ctx, swaps.QuoteRequest{
		Amount: decimal.NewFromInt(1),
		From:   asset(t, "USDT@ethereum"),
		To:     asset(t, "USDC@arbitrum"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
