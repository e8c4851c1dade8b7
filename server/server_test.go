package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/RaghavSood/bridgeswap/celer"
	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/fees"
	"github.com/RaghavSood/bridgeswap/hop"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/stargate"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const sender = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

func init() {
	gin.SetMode(gin.TestMode)
}

type failingAggregator struct{}

func (failingAggregator) GetQuotes(ctx context.Context, amount string, from, to registry.Asset) ([]swaps.Route, error) {
	err := errors.New("upstream down")
	return nil, &swaps.AggregationError{Message: err.Error(), Errors: []error{err}}
}

type fakeBalances struct{}

func (fakeBalances) Supports(chain registry.Chain) bool {
	return chain.WalletStandard == registry.StandardEVM
}

func (fakeBalances) GetBalance(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error) {
	return decimal.RequireFromString("12.5"), nil
}

func instant(m swaps.Model) swaps.Model {
	m.Latency = 0
	return m
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	logger := zaptest.NewLogger(t)

	if deps.Aggregator == nil {
		policy, err := fees.NewPolicy(nil, 0)
		require.NoError(t, err)
		deps.Aggregator = swaps.NewManager(logger, policy,
			stargate.NewProvider(instant(stargate.DefaultModel()), logger),
			hop.NewProvider(instant(hop.DefaultModel()), logger),
			celer.NewProvider(instant(celer.DefaultModel()), logger),
		)
	}
	if deps.Executor == nil {
		deps.Executor = swaps.NewSimulatedExecutor(0, 0)
	}
	if deps.Store == nil {
		store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		deps.Store = store
	}
	deps.Session = session.Config{Debounce: time.Hour, PollInterval: time.Millisecond, SettlementTimeout: 5 * time.Second}

	return New(0, deps, logger)
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec, body := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Deps{})
	do(t, s, http.MethodGet, "/health", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bridgeswap_http_requests_total")
}

func TestChainsAndAssets(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodGet, "/api/v1/chains", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], len(registry.ListChains()))

	rec, body = do(t, s, http.MethodGet, "/api/v1/chains/ethereum/assets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assets := body["data"].([]any)
	require.Len(t, assets, 2)
	assert.Equal(t, "USDT", assets[0].(map[string]any)["symbol"])

	rec, body = do(t, s, http.MethodGet, "/api/v1/chains/dogechain/assets", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestQuotes(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodGet, "/api/v1/quotes?amount=100&from=USDT@ethereum&to=USDC@polygon", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	routes := body["data"].(map[string]any)["routes"].([]any)
	require.Len(t, routes, 3)

	first := routes[0].(map[string]any)
	assert.Equal(t, "Hop", first["bridge"].(map[string]any)["name"])
	assert.Equal(t, "99.900000", first["to_amount"])
	assert.Equal(t, true, first["best_rate"])
	assert.Equal(t, true, first["fastest"])

	last := routes[2].(map[string]any)
	assert.Equal(t, "Stargate", last["bridge"].(map[string]any)["name"])
	assert.Equal(t, false, last["best_rate"])
}

func TestQuotesInvalidAmountIsEmpty(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodGet, "/api/v1/quotes?amount=abc&from=USDT@ethereum&to=USDC@polygon", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["data"].(map[string]any)["routes"])
}

func TestQuotesErrors(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec, body := do(t, s, http.MethodGet, "/api/v1/quotes?amount=100&from=DOGE@ethereum&to=USDC@polygon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid from asset")

	s = newTestServer(t, Deps{Aggregator: failingAggregator{}})
	rec, body = do(t, s, http.MethodGet, "/api/v1/quotes?amount=100&from=USDT@ethereum&to=USDC@polygon", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to get quotes: upstream down", body["error"])
}

func TestValidateAddress(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodGet, "/api/v1/addresses/validate?chain=ethereum&address=0x9858effd232b4033e47d90003d41ec34ecaeda94", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, sender, data["canonical"])

	_, body = do(t, s, http.MethodGet, "/api/v1/addresses/validate?chain=solana&address="+sender, nil)
	assert.Equal(t, false, body["data"].(map[string]any)["valid"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/addresses/validate?chain=nowhere&address=x", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBalances(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec, _ := do(t, s, http.MethodGet, "/api/v1/balances?asset=USDT@ethereum&address="+sender, nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	s = newTestServer(t, Deps{Balances: fakeBalances{}})
	rec, body := do(t, s, http.MethodGet, "/api/v1/balances?asset=USDT@ethereum&address="+sender, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12.500000", body["data"].(map[string]any)["balance"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/balances?asset=USDT@ethereum&address=0x12", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSwapAndHistory(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodPost, "/api/v1/swaps", map[string]string{
		"from":   "USDT@ethereum",
		"to":     "USDC@polygon",
		"amount": "100",
		"bridge": "Celer",
		"sender": sender,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tx := body["data"].(map[string]any)
	assert.Equal(t, "Celer", tx["bridge"])
	assert.Equal(t, "99.850000", tx["to_amount"])
	assert.Equal(t, sender, tx["receiver"])
	assert.Equal(t, string(session.SubmissionSuccess), tx["status"])
	assert.Len(t, tx["tx_hash"], 66)

	rec, body = do(t, s, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := body["data"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, tx["tx_hash"], history[0].(map[string]any)["tx_hash"])

	rec, body = do(t, s, http.MethodGet, "/api/v1/history/"+tx["tx_hash"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Celer", body["data"].(map[string]any)["bridge"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/history/0xdead", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBridges(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, body := do(t, s, http.MethodGet, "/api/v1/bridges", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bridges := body["data"].([]any)
	require.Len(t, bridges, len(swaps.Bridges()))
	assert.Equal(t, "Stargate", bridges[0].(map[string]any)["name"])
	assert.Equal(t, true, bridges[0].(map[string]any)["known"])
}

func TestCreateSwapErrors(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec, _ := do(t, s, http.MethodPost, "/api/v1/swaps", map[string]string{"from": "USDT@ethereum"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := do(t, s, http.MethodPost, "/api/v1/swaps", map[string]string{
		"from": "USDT@ethereum", "to": "USDC@polygon", "amount": "100", "sender": "not-an-address",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid sender")

	rec, _ = do(t, s, http.MethodPost, "/api/v1/swaps", map[string]string{
		"from": "USDT@ethereum", "to": "USDC@polygon", "amount": "100", "sender": sender, "bridge": "Wormhole",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, s, http.MethodPost, "/api/v1/swaps", map[string]string{
		"from": "USDT@ethereum", "to": "USDC@solana", "amount": "100", "sender": sender, "receiver": sender,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["error"], session.ReasonInvalidReceiver)
}
