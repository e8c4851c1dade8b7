package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrChainNotFound = errors.New("chain not found")
	ErrAssetNotFound = errors.New("asset not found")
)

// Registry indexes the supported chains and assets. It is read-only after construction.
type Registry struct {
	chains      []Chain
	chainByID   map[string]Chain
	assetsByKey map[string][]Asset
	assets      []Asset
}

// Default is the process-wide registry built from the static chain and token tables.
var Default = mustDefault()

func mustDefault() *Registry {
	list := make([]Chain, len(chains))
	byID := make(map[string]Chain, len(chains))
	for i, c := range chains {
		c.Supported = true
		list[i] = c
		byID[c.ID] = c
	}
	r, err := New(list, defaultAssets(byID))
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry. Every asset must reference a chain in the list and
// (symbol, chain) pairs must be unique.
func New(chainList []Chain, assetList []Asset) (*Registry, error) {
	r := &Registry{
		chainByID:   make(map[string]Chain, len(chainList)),
		assetsByKey: make(map[string][]Asset),
	}
	for _, c := range chainList {
		if _, dup := r.chainByID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate chain %q", c.ID)
		}
		r.chainByID[c.ID] = c
		r.chains = append(r.chains, c)
	}

	seen := make(map[string]bool, len(assetList))
	for _, a := range assetList {
		if _, ok := r.chainByID[a.Chain.ID]; !ok {
			return nil, fmt.Errorf("asset %s: %w", a, ErrChainNotFound)
		}
		if seen[a.ID()] {
			return nil, fmt.Errorf("duplicate asset %s", a)
		}
		seen[a.ID()] = true
		r.assets = append(r.assets, a)
		r.assetsByKey[a.Chain.ID] = append(r.assetsByKey[a.Chain.ID], a)
	}
	return r, nil
}

// ListChains returns all chains in registration order.
func (r *Registry) ListChains() []Chain {
	out := make([]Chain, len(r.chains))
	copy(out, r.chains)
	return out
}

// Chain returns the chain with the given id.
func (r *Registry) Chain(id string) (Chain, bool) {
	c, ok := r.chainByID[id]
	return c, ok
}

// ListAssetsForChain returns the assets on a chain, or nil for an unknown chain.
func (r *Registry) ListAssetsForChain(chainID string) []Asset {
	list := r.assetsByKey[chainID]
	if len(list) == 0 {
		return nil
	}
	out := make([]Asset, len(list))
	copy(out, list)
	return out
}

// ListAssets returns every asset in registration order.
func (r *Registry) ListAssets() []Asset {
	out := make([]Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// FindAsset looks up an asset by symbol (case-insensitive) and chain id.
func (r *Registry) FindAsset(symbol, chainID string) (Asset, bool) {
	for _, a := range r.assetsByKey[chainID] {
		if strings.EqualFold(a.Symbol, symbol) {
			return a, true
		}
	}
	return Asset{}, false
}

// Resolve parses SYMBOL@chain notation and looks the asset up.
func (r *Registry) Resolve(notation string) (Asset, error) {
	ref, err := ParseAssetRef(notation)
	if err != nil {
		return Asset{}, err
	}
	if _, ok := r.chainByID[ref.ChainID]; !ok {
		return Asset{}, fmt.Errorf("%s: %w", ref.ChainID, ErrChainNotFound)
	}
	a, ok := r.FindAsset(ref.Symbol, ref.ChainID)
	if !ok {
		return Asset{}, fmt.Errorf("%s: %w", notation, ErrAssetNotFound)
	}
	return a, nil
}

// Symbols returns the distinct asset symbols in first-seen order.
func (r *Registry) Symbols() []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range r.assets {
		if !seen[a.Symbol] {
			seen[a.Symbol] = true
			out = append(out, a.Symbol)
		}
	}
	return out
}

// ListChains returns all chains of the default registry.
func ListChains() []Chain { return Default.ListChains() }

// ListAssetsForChain returns the assets of a chain in the default registry.
func ListAssetsForChain(chainID string) []Asset { return Default.ListAssetsForChain(chainID) }

// FindAsset looks up an asset in the default registry.
func FindAsset(symbol, chainID string) (Asset, bool) { return Default.FindAsset(symbol, chainID) }
