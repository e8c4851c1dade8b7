package celer

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

func TestQuote(t *testing.T) {
	model := DefaultModel()
	model.Latency = 0
	p := NewProvider(model, zaptest.NewLogger(t))

	from, err := registry.Default.Resolve("USDT@ethereum")
	require.NoError(t, err)
	to, err := registry.Default.Resolve("USDT@bsc")
	require.NoError(t, err)

	route, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount:                 decimal.NewFromInt(100),
		From:                   from,
		To:                     to,
		FeeBPS:                 50,
		FeeCollectorConfigured: true,
	})
	require.NoError(t, err)

	// BSC stablecoins carry 18 decimals.
	assert.Equal(t, "99.350000000000000000", route.ToAmount)
	assert.Equal(t, 10, route.EstimatedMinutes)

	_, err = p.Quote(context.Background(), swaps.QuoteRequest{Amount: decimal.NewFromInt(1), From: from, To: from})
	assert.ErrorIs(t, err, swaps.ErrIneligible)
}
