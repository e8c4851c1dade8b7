package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const apiVersion = "v1"

// Store is the history backend of the API.
type Store interface {
	session.History
	GetTransactions(ctx context.Context) ([]db.Transaction, error)
	GetTransaction(ctx context.Context, txHash string) (db.Transaction, error)
}

// BalanceLookup resolves wallet balances. It is optional.
type BalanceLookup interface {
	Supports(chain registry.Chain) bool
	GetBalance(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error)
}

// Deps are the collaborators behind the API.
type Deps struct {
	Registry   *registry.Registry
	Aggregator session.Aggregator
	Executor   swaps.Executor
	Store      Store
	Balances   BalanceLookup
	Session    session.Config
}

type Server struct {
	port   int
	deps   Deps
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server
}

func New(port int, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = registry.Default
	}
	s := &Server{
		port:   port,
		deps:   deps,
		logger: logger.Named("http"),
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	r.Use(cors.New(corsConf))

	r.Use(metricsMiddleware())
	r.Use(loggingMiddleware(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("api").Group(apiVersion)
	api.GET("/chains", s.listChains)
	api.GET("/chains/:id/assets", s.listAssets)
	api.GET("/bridges", s.listBridges)
	api.GET("/quotes", s.getQuotes)
	api.GET("/addresses/validate", s.validateAddress)
	api.GET("/balances", s.getBalance)
	api.POST("/swaps", s.createSwap)
	api.GET("/history", s.getHistory)
	api.GET("/history/:hash", s.getTransaction)

	return r
}

// Start serves the API until Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("failed to stop http server", zap.Error(err))
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
