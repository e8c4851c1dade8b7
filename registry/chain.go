package registry

import "fmt"

// WalletStandard groups chains that share an address format and signing interface.
type WalletStandard string

const (
	StandardEVM    WalletStandard = "evm"
	StandardSolana WalletStandard = "solana"
	StandardTron   WalletStandard = "tron"
	StandardSui    WalletStandard = "sui"
	StandardNear   WalletStandard = "near"
)

// Standards lists every wallet standard in display order.
var Standards = []WalletStandard{StandardEVM, StandardSolana, StandardTron, StandardSui, StandardNear}

// ParseStandard returns the wallet standard named by s.
func ParseStandard(s string) (WalletStandard, error) {
	for _, std := range Standards {
		if string(std) == s {
			return std, nil
		}
	}
	return "", fmt.Errorf("unknown wallet standard %q", s)
}

// Chain is a supported blockchain. Values are immutable once loaded.
type Chain struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	WalletStandard WalletStandard `json:"wallet_standard"`
	ExplorerURL    string         `json:"explorer_url,omitempty"`
	ExplorerTxPath string         `json:"explorer_tx_path,omitempty"` // e.g. "/tx/" or "/#/transaction/"
	NumericID      int64          `json:"numeric_id"`
	Supported      bool           `json:"supported"`
}

// ExplorerTxURL returns the block explorer link for a transaction hash on this chain,
// or an empty string when the chain has no explorer configured.
func (c Chain) ExplorerTxURL(txHash string) string {
	if c.ExplorerURL == "" {
		return ""
	}
	path := c.ExplorerTxPath
	if path == "" {
		path = "/tx/"
	}
	return c.ExplorerURL + path + txHash
}
