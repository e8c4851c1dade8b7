package wallet

import (
	"errors"
	"fmt"

	"github.com/RaghavSood/bridgeswap/registry"
)

var ErrWalletNotFound = errors.New("wallet provider not found")

// Provider describes a wallet application and the chain family it signs for.
type Provider struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Standard registry.WalletStandard `json:"standard"`
}

var providers = []Provider{
	{ID: "metamask", Name: "MetaMask", Standard: registry.StandardEVM},
	{ID: "coinbase", Name: "Coinbase Wallet", Standard: registry.StandardEVM},
	{ID: "okxwallet", Name: "OKX Wallet", Standard: registry.StandardEVM},
	{ID: "cryptocom", Name: "Crypto.com DeFi Wallet", Standard: registry.StandardEVM},
	{ID: "binancewallet", Name: "Binance Wallet", Standard: registry.StandardEVM},
	{ID: "phantom", Name: "Phantom", Standard: registry.StandardSolana},
	{ID: "solflare", Name: "Solflare", Standard: registry.StandardSolana},
	{ID: "tronlink", Name: "TronLink", Standard: registry.StandardTron},
	{ID: "suiet", Name: "Suiet", Standard: registry.StandardSui},
	{ID: "suiwallet", Name: "Sui Wallet", Standard: registry.StandardSui},
	{ID: "nearwallet", Name: "NEAR Wallet", Standard: registry.StandardNear},
}

// Providers returns the wallet provider catalogue.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ProvidersFor returns the wallet providers that sign for a wallet standard.
func ProvidersFor(std registry.WalletStandard) []Provider {
	var out []Provider
	for _, p := range providers {
		if p.Standard == std {
			out = append(out, p)
		}
	}
	return out
}

// FindProvider looks a wallet provider up by ID.
func FindProvider(id string) (Provider, error) {
	for _, p := range providers {
		if p.ID == id {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %s", ErrWalletNotFound, id)
}
