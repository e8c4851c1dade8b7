package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	chains := ListChains()
	require.Len(t, chains, 17)
	assert.Equal(t, "ethereum", chains[0].ID)
	for _, c := range chains {
		assert.True(t, c.Supported, c.ID)
		assert.Len(t, ListAssetsForChain(c.ID), 2, c.ID)
	}
}

func TestFindAsset(t *testing.T) {
	a, ok := FindAsset("usdt", "ethereum")
	require.True(t, ok)
	assert.Equal(t, "USDT", a.Symbol)
	assert.Equal(t, int32(6), a.Decimals)
	assert.Equal(t, "usdt-ethereum", a.ID())
	assert.False(t, a.IsNative())

	bsc, ok := FindAsset("USDC", "bsc")
	require.True(t, ok)
	assert.Equal(t, int32(18), bsc.Decimals)

	_, ok = FindAsset("DAI", "ethereum")
	assert.False(t, ok)

	_, ok = FindAsset("USDT", "bitcoin")
	assert.False(t, ok)
	assert.Nil(t, ListAssetsForChain("bitcoin"))
}

func TestResolve(t *testing.T) {
	a, err := Default.Resolve("usdc@arbitrum")
	require.NoError(t, err)
	assert.Equal(t, "USDC@arbitrum", a.String())
	assert.Equal(t, StandardEVM, a.Chain.WalletStandard)

	_, err = Default.Resolve("USDC@mars")
	assert.ErrorIs(t, err, ErrChainNotFound)

	_, err = Default.Resolve("WBTC@ethereum")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = Default.Resolve("USDC")
	assert.Error(t, err)
}

func TestNewRejectsOrphanAsset(t *testing.T) {
	eth := Chain{ID: "ethereum", WalletStandard: StandardEVM}
	_, err := New([]Chain{eth}, []Asset{{Symbol: "USDC", Chain: Chain{ID: "base"}}})
	assert.ErrorIs(t, err, ErrChainNotFound)

	_, err = New([]Chain{eth}, []Asset{{Symbol: "USDC", Chain: eth}, {Symbol: "usdc", Chain: eth}})
	assert.Error(t, err)
}

func TestExplorerTxURL(t *testing.T) {
	tron, ok := Default.Chain("tron")
	require.True(t, ok)
	assert.Equal(t, "https://tronscan.org/#/transaction/abc", tron.ExplorerTxURL("abc"))
	assert.Equal(t, "", Chain{ID: "x"}.ExplorerTxURL("abc"))
}

func TestParseStandard(t *testing.T) {
	std, err := ParseStandard("sui")
	require.NoError(t, err)
	assert.Equal(t, StandardSui, std)
	_, err = ParseStandard("bitcoin")
	assert.Error(t, err)
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, []string{"USDT", "USDC"}, Default.Symbols())
}
