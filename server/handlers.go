package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/addrcheck"
	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/wallet"
)

type quotesResponse struct {
	Routes []swaps.RankedRoute `json:"routes"`
}

type validateResponse struct {
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
}

type balanceResponse struct {
	Address string         `json:"address"`
	Asset   registry.Asset `json:"asset"`
	Balance string         `json:"balance"`
}

type swapRequest struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Bridge   string `json:"bridge"`
	Sender   string `json:"sender" binding:"required"`
	Receiver string `json:"receiver"`
}

func (s *Server) listChains(c *gin.Context) {
	success(c, s.deps.Registry.ListChains())
}

func (s *Server) listBridges(c *gin.Context) {
	success(c, swaps.Bridges())
}

func (s *Server) listAssets(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.deps.Registry.Chain(id); !ok {
		notFound(c, "chain not found")
		return
	}
	success(c, s.deps.Registry.ListAssetsForChain(id))
}

func (s *Server) resolvePair(c *gin.Context, from, to string) (registry.Asset, registry.Asset, bool) {
	fromAsset, err := s.deps.Registry.Resolve(from)
	if err != nil {
		badRequest(c, "invalid from asset: "+err.Error())
		return registry.Asset{}, registry.Asset{}, false
	}
	toAsset, err := s.deps.Registry.Resolve(to)
	if err != nil {
		badRequest(c, "invalid to asset: "+err.Error())
		return registry.Asset{}, registry.Asset{}, false
	}
	return fromAsset, toAsset, true
}

func (s *Server) getQuotes(c *gin.Context) {
	from, to, ok := s.resolvePair(c, c.Query("from"), c.Query("to"))
	if !ok {
		return
	}

	routes, err := s.deps.Aggregator.GetQuotes(c.Request.Context(), c.Query("amount"), from, to)
	if err != nil {
		var aggErr *swaps.AggregationError
		if errors.As(err, &aggErr) {
			fail(c, http.StatusBadGateway, aggErr.Error())
			return
		}
		internalError(c, err.Error())
		return
	}

	success(c, quotesResponse{Routes: swaps.Rank(routes)})
}

func (s *Server) validateAddress(c *gin.Context) {
	chain, ok := s.deps.Registry.Chain(c.Query("chain"))
	if !ok {
		notFound(c, "chain not found")
		return
	}

	address := c.Query("address")
	resp := validateResponse{Valid: addrcheck.IsValidAddress(address, chain.WalletStandard)}
	if resp.Valid {
		if canonical, err := addrcheck.Canonical(address, chain.WalletStandard); err == nil {
			resp.Canonical = canonical
		}
	}
	success(c, resp)
}

func (s *Server) getBalance(c *gin.Context) {
	asset, err := s.deps.Registry.Resolve(c.Query("asset"))
	if err != nil {
		badRequest(c, "invalid asset: "+err.Error())
		return
	}
	if s.deps.Balances == nil || !s.deps.Balances.Supports(asset.Chain) {
		fail(c, http.StatusNotImplemented, "balance lookup not available for "+asset.Chain.ID)
		return
	}

	address := c.Query("address")
	if !addrcheck.IsValidAddress(address, asset.Chain.WalletStandard) {
		badRequest(c, "invalid address")
		return
	}

	balance, err := s.deps.Balances.GetBalance(c.Request.Context(), address, asset)
	if err != nil {
		s.logger.Warn("balance lookup failed", zap.String("address", address), zap.Stringer("asset", asset), zap.Error(err))
		fail(c, http.StatusBadGateway, err.Error())
		return
	}
	success(c, balanceResponse{Address: address, Asset: asset, Balance: balance.StringFixed(asset.Decimals)})
}

// createSwap runs one swap end to end on a fresh session: quote, select, submit.
func (s *Server) createSwap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	from, to, ok := s.resolvePair(c, req.From, req.To)
	if !ok {
		return
	}

	providers := wallet.ProvidersFor(from.Chain.WalletStandard)
	if len(providers) == 0 {
		badRequest(c, "no wallet provider for "+string(from.Chain.WalletStandard))
		return
	}
	acct, err := wallet.Connect(c.Request.Context(), wallet.NewStaticConnector(providers[0], req.Sender))
	if err != nil {
		badRequest(c, "invalid sender: "+err.Error())
		return
	}

	sess := session.New(s.deps.Aggregator, s.deps.Executor, s.deps.Store, s.deps.Session, s.logger)
	defer sess.Close()

	sess.SetFromAsset(from)
	sess.SetToAsset(to)
	sess.SetAmount(req.Amount)
	sess.ConnectWallet(acct)
	if req.Receiver != "" {
		sess.SetReceiver(req.Receiver)
	}

	if _, err := sess.Refresh(c.Request.Context()); err != nil {
		var aggErr *swaps.AggregationError
		if errors.As(err, &aggErr) {
			fail(c, http.StatusBadGateway, aggErr.Error())
			return
		}
		internalError(c, err.Error())
		return
	}

	if req.Bridge != "" {
		if err := sess.SelectBridge(req.Bridge); err != nil {
			notFound(c, err.Error())
			return
		}
	}

	tx, err := sess.Submit(c.Request.Context())
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			fail(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		fail(c, http.StatusBadGateway, err.Error())
		return
	}
	success(c, tx)
}

func (s *Server) getHistory(c *gin.Context) {
	if s.deps.Store == nil {
		success(c, []db.Transaction{})
		return
	}
	txs, err := s.deps.Store.GetTransactions(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load history", zap.Error(err))
		internalError(c, "failed to load history")
		return
	}
	if txs == nil {
		txs = []db.Transaction{}
	}
	success(c, txs)
}

func (s *Server) getTransaction(c *gin.Context) {
	if s.deps.Store == nil {
		notFound(c, "transaction not found")
		return
	}
	tx, err := s.deps.Store.GetTransaction(c.Request.Context(), c.Param("hash"))
	if errors.Is(err, db.ErrNotFound) {
		notFound(c, "transaction not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load transaction", zap.String("tx", c.Param("hash")), zap.Error(err))
		internalError(c, "failed to load transaction")
		return
	}
	success(c, tx)
}
