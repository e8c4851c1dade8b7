package registry

import (
	"fmt"
	"strings"
)

// Asset is a tradeable token on a specific chain. Identity is (symbol, chain).
type Asset struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Chain           Chain  `json:"chain"`
	Decimals        int32  `json:"decimals"`
	ContractAddress string `json:"contract_address,omitempty"` // empty for native assets
}

// ID returns the stable asset identifier, e.g. "usdt-ethereum".
func (a Asset) ID() string {
	return strings.ToLower(a.Symbol) + "-" + a.Chain.ID
}

// IsNative returns true if the asset is the chain's native asset (no contract address).
func (a Asset) IsNative() bool {
	return a.ContractAddress == ""
}

// Same reports whether a and b identify the same asset.
func (a Asset) Same(b Asset) bool {
	return strings.EqualFold(a.Symbol, b.Symbol) && a.Chain.ID == b.Chain.ID
}

// String returns the asset in SYMBOL@chain notation.
func (a Asset) String() string {
	return fmt.Sprintf("%s@%s", a.Symbol, a.Chain.ID)
}

// AssetRef is an unresolved SYMBOL@chain reference.
type AssetRef struct {
	Symbol  string
	ChainID string
}

// ParseAssetRef parses SYMBOL@chain notation.
// Examples: "USDT@ethereum", "usdc@polygon-zkevm"
func ParseAssetRef(s string) (AssetRef, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "@", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return AssetRef{}, fmt.Errorf("invalid asset notation %q: expected SYMBOL@chain", s)
	}
	return AssetRef{
		Symbol:  strings.ToUpper(parts[0]),
		ChainID: strings.ToLower(parts[1]),
	}, nil
}
