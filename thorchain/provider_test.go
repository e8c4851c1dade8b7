package thorchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const collector = "0x34a52862569c6230419357418a02a90503023a1b"

func asset(t *testing.T, notation string) registry.Asset {
	t.Helper()
	a, err := registry.Default.Resolve(notation)
	require.NoError(t, err)
	return a
}

func testProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProvider(srv.URL, map[registry.WalletStandard]string{registry.StandardEVM: collector}, srv.Client(), zaptest.NewLogger(t))
}

func TestAssetNotation(t *testing.T) {
	n, ok := AssetNotation(asset(t, "USDC@ethereum"))
	require.True(t, ok)
	assert.Equal(t, "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", n)

	n, ok = AssetNotation(asset(t, "USDT@bsc"))
	require.True(t, ok)
	assert.Equal(t, "BSC.USDT-0X55D398326F99059FF775485246999027B3197955", n)

	_, ok = AssetNotation(asset(t, "USDC@polygon"))
	assert.False(t, ok)
}

func TestEligible(t *testing.T) {
	p := NewProvider("", nil, nil, nil)

	assert.True(t, p.Eligible(asset(t, "USDC@ethereum"), asset(t, "USDC@avalanche")))
	assert.True(t, p.Eligible(asset(t, "USDT@bsc"), asset(t, "USDC@base")))
	assert.False(t, p.Eligible(asset(t, "USDC@ethereum"), asset(t, "USDT@ethereum")))
	assert.False(t, p.Eligible(asset(t, "USDC@ethereum"), asset(t, "USDC@solana")))
}

func TestQuote(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thorchain/quote/swap", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", q.Get("from_asset"))
		assert.Equal(t, "AVAX.USDC-0XB97EF9EF8734C71904D8002F8B6BC66DD9C48A6E", q.Get("to_asset"))
		assert.Equal(t, "10000000000", q.Get("amount"))
		assert.Equal(t, collector, q.Get("destination"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"expected_amount_out": "9950000000",
			"fees": {"asset": "AVAX.USDC", "outbound": "150000000", "liquidity": "20000000", "total": "50000000", "total_bps": 5},
			"outbound_delay_seconds": 0,
			"total_swap_seconds": 125
		}`))
	})

	route, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount:                 decimal.NewFromInt(100),
		From:                   asset(t, "USDC@ethereum"),
		To:                     asset(t, "USDC@avalanche"),
		FeeBPS:                 50,
		FeeCollectorConfigured: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "99.000000", route.ToAmount)
	assert.Equal(t, "0.99", route.Rate.String())
	assert.Equal(t, "$1.50", route.GasFeeDisplay())
	assert.Equal(t, "$0.50", route.ServiceFeeDisplay())
	assert.Equal(t, 3, route.EstimatedMinutes)
	assert.Equal(t, "THORChain", route.Bridge.Name)
	assert.Equal(t, "thorchain-direct", route.Aggregator.ID)
	require.True(t, route.AggregatorFee.Valid)
	assert.Equal(t, "0.5", route.AggregatorFee.Decimal.String())
}

func TestQuoteAPIError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"trading is halted"}`, http.StatusBadRequest)
	})

	_, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount: decimal.NewFromInt(100),
		From:   asset(t, "USDC@ethereum"),
		To:     asset(t, "USDC@base"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trading is halted")
}

func TestQuoteRejectsOversizedAmount(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("quote endpoint called for an oversized amount")
	})

	_, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount: decimal.RequireFromString("100000000000"),
		From:   asset(t, "USDC@ethereum"),
		To:     asset(t, "USDC@avalanche"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds thorchain maximum")
}

func TestQuoteIneligible(t *testing.T) {
	p := NewProvider("", nil, nil, nil)
	_, err := p.Quote(context.Background(), swaps.QuoteRequest{
		Amount: decimal.NewFromInt(100),
		From:   asset(t, "USDC@polygon"),
		To:     asset(t, "USDC@base"),
	})
	assert.ErrorIs(t, err, swaps.ErrIneligible)
}

func TestRouteFromQuoteFallsBackToOutboundDelay(t *testing.T) {
	req := swaps.QuoteRequest{
		Amount: decimal.NewFromInt(10),
		From:   asset(t, "USDC@ethereum"),
		To:     asset(t, "USDT@bsc"),
	}
	route, err := routeFromQuote(req, &QuoteResponse{ExpectedAmountOut: "990000000", OutboundDelaySecs: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, route.EstimatedMinutes)
	assert.Equal(t, "9.900000000000000000", route.ToAmount)
	assert.False(t, route.AggregatorFee.Valid)

	_, err = routeFromQuote(req, &QuoteResponse{ExpectedAmountOut: "lots"})
	assert.Error(t, err)
}
