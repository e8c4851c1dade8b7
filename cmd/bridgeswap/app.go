package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/apilog"
	"github.com/RaghavSood/bridgeswap/balances"
	"github.com/RaghavSood/bridgeswap/celer"
	"github.com/RaghavSood/bridgeswap/config"
	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/hop"
	"github.com/RaghavSood/bridgeswap/logging"
	"github.com/RaghavSood/bridgeswap/nearintents"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/stargate"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/thorchain"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *db.Store
	manager  *swaps.Manager
	executor *swaps.SimulatedExecutor
	balances *balances.Service

	evmClients map[string]*ethclient.Client
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		evmClients: make(map[string]*ethclient.Client),
	}

	policy, err := cfg.FeePolicy()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building fee policy: %w", err)
	}

	a.manager = swaps.NewManager(logger, policy, a.providers(policy.Collectors)...)
	a.manager.SetProviderTimeout(cfg.ProviderTimeout)
	a.executor = swaps.NewSimulatedExecutor(cfg.Settlement.BroadcastDelay, cfg.Settlement.ConfirmDelay)

	if err := a.connectRPC(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("initialized", zap.Stringer("aggregator", a.manager))
	return a, nil
}

func (a *app) providers(collectors map[registry.WalletStandard]string) []swaps.Provider {
	var providers []swaps.Provider

	if a.cfg.ProviderEnabled(stargate.Name) {
		providers = append(providers, stargate.NewProvider(a.cfg.Model(stargate.Name, stargate.DefaultModel()), a.logger))
	}
	if a.cfg.ProviderEnabled(hop.Name) {
		providers = append(providers, hop.NewProvider(a.cfg.Model(hop.Name, hop.DefaultModel()), a.logger))
	}
	if a.cfg.ProviderEnabled(celer.Name) {
		providers = append(providers, celer.NewProvider(a.cfg.Model(celer.Name, celer.DefaultModel()), a.logger))
	}

	if niCfg, ok := a.cfg.Providers[nearintents.Name]; ok && niCfg.APIKey != "" {
		httpClient := apilog.NewHTTPClient(nearintents.Name, a.store, a.logger)
		providers = append(providers, nearintents.NewProvider(niCfg.APIKey, collectors, httpClient, a.logger))
		a.logger.Info("NEAR Intents provider enabled")
	}

	if a.cfg.ProviderEnabled(thorchain.Name) {
		httpClient := apilog.NewHTTPClient(thorchain.Name, a.store, a.logger)
		providers = append(providers, thorchain.NewProvider(a.cfg.Providers[thorchain.Name].BaseURL, collectors, httpClient, a.logger))
		a.logger.Info("THORChain provider enabled")
	}

	return providers
}

// connectRPC dials the configured RPC endpoints and builds the balance service.
func (a *app) connectRPC() error {
	evm := make(map[string]balances.EVMClient)
	var solanaClient balances.SolanaClient

	for chainID, url := range a.cfg.RPCEndpoints {
		chain, ok := registry.Default.Chain(chainID)
		if !ok {
			return fmt.Errorf("rpc_endpoints: %s: %w", chainID, registry.ErrChainNotFound)
		}

		switch chain.WalletStandard {
		case registry.StandardEVM:
			client, err := ethclient.Dial(url)
			if err != nil {
				return fmt.Errorf("connecting to %s RPC: %w", chainID, err)
			}
			a.evmClients[chainID] = client
			evm[chainID] = client
		case registry.StandardSolana:
			solanaClient = rpc.New(url)
		default:
			a.logger.Warn("balance lookup not supported, ignoring RPC endpoint", zap.String("chain", chainID))
			continue
		}
		a.logger.Info("connected RPC", zap.String("chain", chainID))
	}

	a.balances = balances.NewService(evm, solanaClient, a.cfg.BalanceTTL, a.logger)
	return nil
}

func (a *app) sessionConfig() session.Config {
	return session.Config{
		Debounce:          a.cfg.Debounce,
		PollInterval:      a.cfg.Settlement.PollInterval,
		SettlementTimeout: a.cfg.Settlement.Timeout,
	}
}

func (a *app) Close() {
	for _, c := range a.evmClients {
		c.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	a.logger.Sync()
}
