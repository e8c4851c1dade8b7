package thorchain

import (
	"strings"

	"github.com/RaghavSood/bridgeswap/registry"
)

// thorChains maps registry chain IDs to THORChain chain identifiers.
var thorChains = map[string]string{
	"ethereum":  "ETH",
	"avalanche": "AVAX",
	"base":      "BASE",
	"bsc":       "BSC",
}

var supportedSymbols = map[string]bool{"USDC": true, "USDT": true}

// AssetNotation returns the THORChain notation of an asset, e.g.
// "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48".
func AssetNotation(a registry.Asset) (string, bool) {
	chain, ok := thorChains[a.Chain.ID]
	if !ok || !supportedSymbols[a.Symbol] || a.ContractAddress == "" {
		return "", false
	}
	return chain + "." + a.Symbol + "-" + strings.ToUpper(a.ContractAddress), true
}
