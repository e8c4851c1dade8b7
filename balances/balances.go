// Package balances looks up wallet balances on EVM chains and Solana.
package balances

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
)

// ErrUnsupported is returned for chains without a configured RPC endpoint.
var ErrUnsupported = errors.New("balance lookup not supported for chain")

const (
	evmNativeDecimals    = 18
	solanaNativeDecimals = 9
)

var erc20ABI abi.ABI

func init() {
	var err error
	erc20ABI, err = abi.JSON(strings.NewReader(`[{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		panic(err)
	}
}

// EVMClient is the subset of *ethclient.Client used for balances.
type EVMClient interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// SolanaClient is the subset of *rpc.Client used for balances.
type SolanaClient interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
}

// Service resolves balances through per-chain RPC clients and caches results briefly.
type Service struct {
	evm    map[string]EVMClient // keyed by registry chain ID
	solana SolanaClient
	cache  *Cache[decimal.Decimal]
	logger *zap.Logger
}

// NewService creates a Service. solanaClient may be nil.
func NewService(evm map[string]EVMClient, solanaClient SolanaClient, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if evm == nil {
		evm = map[string]EVMClient{}
	}
	return &Service{
		evm:    evm,
		solana: solanaClient,
		cache:  NewCache[decimal.Decimal](ttl),
		logger: logger.Named("balances"),
	}
}

// Supports reports whether balances can be looked up on chain.
func (s *Service) Supports(chain registry.Chain) bool {
	switch chain.WalletStandard {
	case registry.StandardEVM:
		_, ok := s.evm[chain.ID]
		return ok
	case registry.StandardSolana:
		return s.solana != nil
	default:
		return false
	}
}

// GetBalance returns the balance of asset held by address in whole units.
func (s *Service) GetBalance(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error) {
	if !s.Supports(asset.Chain) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupported, asset.Chain.ID)
	}

	key := asset.ID() + ":" + address
	return s.cache.GetOrFetch(key, func() (decimal.Decimal, error) {
		bal, err := s.fetch(ctx, address, asset)
		if err != nil {
			s.logger.Warn("balance lookup failed", zap.String("address", address), zap.Stringer("asset", asset), zap.Error(err))
			return decimal.Zero, err
		}
		return bal, nil
	})
}

// Invalidate forgets a cached balance, e.g. after a swap is submitted.
func (s *Service) Invalidate(address string, asset registry.Asset) {
	s.cache.Invalidate(asset.ID() + ":" + address)
}

func (s *Service) fetch(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error) {
	switch asset.Chain.WalletStandard {
	case registry.StandardEVM:
		return s.evmBalance(ctx, s.evm[asset.Chain.ID], address, asset)
	case registry.StandardSolana:
		return s.solanaBalance(ctx, address, asset)
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupported, asset.Chain.ID)
	}
}

func (s *Service) evmBalance(ctx context.Context, client EVMClient, address string, asset registry.Asset) (decimal.Decimal, error) {
	if !common.IsHexAddress(address) {
		return decimal.Zero, fmt.Errorf("invalid evm address %q", address)
	}
	owner := common.HexToAddress(address)

	if asset.IsNative() {
		bal, err := client.BalanceAt(ctx, owner, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("getting native balance: %w", err)
		}
		return decimal.NewFromBigInt(bal, -evmNativeDecimals), nil
	}

	bal, err := ERC20Balance(ctx, client, common.HexToAddress(asset.ContractAddress), owner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting %s balance: %w", asset.Symbol, err)
	}
	return decimal.NewFromBigInt(bal, -asset.Decimals), nil
}

// ERC20Balance returns the token balance (smallest unit) of owner.
func ERC20Balance(ctx context.Context, client EVMClient, token, owner common.Address) (*big.Int, error) {
	balOfData, err := erc20ABI.Pack("balanceOf", owner)
	if err != nil {
		return nil, err
	}

	output, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: balOfData,
	}, nil)
	if err != nil {
		return nil, err
	}

	if len(output) < 32 {
		return big.NewInt(0), nil
	}

	return new(big.Int).SetBytes(output), nil
}

func (s *Service) solanaBalance(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid solana address %q: %w", address, err)
	}

	if asset.IsNative() {
		res, err := s.solana.GetBalance(ctx, owner, rpc.CommitmentFinalized)
		if err != nil {
			return decimal.Zero, fmt.Errorf("getting SOL balance: %w", err)
		}
		return decimal.NewFromBigInt(new(big.Int).SetUint64(res.Value), -solanaNativeDecimals), nil
	}

	mint, err := solana.PublicKeyFromBase58(asset.ContractAddress)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid mint %q: %w", asset.ContractAddress, err)
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return decimal.Zero, fmt.Errorf("deriving token account: %w", err)
	}

	res, err := s.solana.GetTokenAccountBalance(ctx, ata, rpc.CommitmentFinalized)
	if err != nil {
		// A wallet that never held the token has no associated account.
		if strings.Contains(err.Error(), "could not find account") {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("getting %s balance: %w", asset.Symbol, err)
	}
	if res == nil || res.Value == nil {
		return decimal.Zero, nil
	}

	raw, ok := new(big.Int).SetString(res.Value.Amount, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("parsing token amount %q", res.Value.Amount)
	}
	return decimal.NewFromBigInt(raw, -int32(res.Value.Decimals)), nil
}
