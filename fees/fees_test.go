package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaghavSood/bridgeswap/registry"
)

func TestComputeServiceFee(t *testing.T) {
	thousand := decimal.NewFromInt(1000)

	assert.True(t, ComputeServiceFee(thousand, 50, true).Equal(decimal.NewFromInt(5)))
	assert.True(t, ComputeServiceFee(thousand, 50, false).IsZero())
	assert.True(t, ComputeServiceFee(thousand, 0, true).IsZero())
	assert.True(t, ComputeServiceFee(thousand, -10, true).IsZero())
	assert.Equal(t, "0.5", ComputeServiceFee(decimal.NewFromInt(100), 50, true).String())
	assert.Equal(t, "0.0617", ComputeServiceFee(decimal.RequireFromString("12.34"), 50, true).String())
}

func TestPolicy(t *testing.T) {
	p, err := NewPolicy(map[registry.WalletStandard]string{
		registry.StandardEVM:  "0x34a52862569c6230419357418a02a90503023a1b",
		registry.StandardTron: "",
	}, 50)
	require.NoError(t, err)

	assert.True(t, p.Configured(registry.StandardEVM))
	assert.False(t, p.Configured(registry.StandardTron))
	assert.False(t, p.Configured(registry.StandardSui))

	addr, ok := p.CollectorFor(registry.StandardEVM)
	require.True(t, ok)
	assert.Equal(t, "0x34a52862569c6230419357418a02a90503023a1b", addr)

	amount := decimal.NewFromInt(1000)
	assert.True(t, p.ServiceFee(amount, registry.StandardEVM).Equal(decimal.NewFromInt(5)))
	assert.True(t, p.ServiceFee(amount, registry.StandardSui).IsZero())
}

func TestNewPolicyRejectsBadRate(t *testing.T) {
	_, err := NewPolicy(nil, -1)
	assert.Error(t, err)
	_, err = NewPolicy(nil, MaxBPS+1)
	assert.Error(t, err)

	p, err := NewPolicy(nil, MaxBPS)
	require.NoError(t, err)
	assert.False(t, p.Configured(registry.StandardEVM))
}
