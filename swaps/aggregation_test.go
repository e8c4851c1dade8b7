package swaps_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/RaghavSood/bridgeswap/celer"
	"github.com/RaghavSood/bridgeswap/fees"
	"github.com/RaghavSood/bridgeswap/hop"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/stargate"
	"github.com/RaghavSood/bridgeswap/swaps"
)

func TestReferenceProvidersEndToEnd(t *testing.T) {
	logger := zaptest.NewLogger(t)
	policy, err := fees.NewPolicy(map[registry.WalletStandard]string{
		registry.StandardEVM: "0x34a52862569c6230419357418a02a90503023a1b",
	}, 50)
	require.NoError(t, err)

	sg, hp, cl := stargate.DefaultModel(), hop.DefaultModel(), celer.DefaultModel()
	sg.Latency, hp.Latency, cl.Latency = 0, 0, 0
	m := swaps.NewManager(logger, policy,
		stargate.NewProvider(sg, logger),
		hop.NewProvider(hp, logger),
		celer.NewProvider(cl, logger),
	)

	from, err := registry.Default.Resolve("USDT@ethereum")
	require.NoError(t, err)
	to, err := registry.Default.Resolve("USDC@arbitrum")
	require.NoError(t, err)

	routes, err := m.GetQuotes(context.Background(), "100", from, to)
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, "Hop", routes[0].Bridge.Name)
	assert.Equal(t, "99.400000", routes[0].ToAmount)
	assert.Equal(t, "Celer", routes[1].Bridge.Name)
	assert.Equal(t, "99.350000", routes[1].ToAmount)
	assert.Equal(t, "Stargate", routes[2].Bridge.Name)
	assert.Equal(t, "99.300000", routes[2].ToAmount)

	ranked := swaps.Rank(routes)
	assert.True(t, ranked[0].BestRate)
	assert.True(t, ranked[0].Fastest)
	for _, r := range ranked[1:] {
		assert.False(t, r.BestRate)
		assert.False(t, r.Fastest)
	}
}
