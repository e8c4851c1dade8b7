package addrcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaghavSood/bridgeswap/registry"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		standard registry.WalletStandard
		want     bool
	}{
		{"evm 40 hex", "0x" + strings.Repeat("a", 40), registry.StandardEVM, true},
		{"evm mixed case", "0x34a52862569c6230419357418a02a90503023A1B", registry.StandardEVM, true},
		{"evm 39 hex", "0x" + strings.Repeat("a", 39), registry.StandardEVM, false},
		{"evm 41 hex", "0x" + strings.Repeat("a", 41), registry.StandardEVM, false},
		{"evm no prefix", strings.Repeat("a", 40), registry.StandardEVM, false},
		{"evm upper prefix", "0X" + strings.Repeat("a", 40), registry.StandardEVM, false},
		{"evm non hex", "0x" + strings.Repeat("g", 40), registry.StandardEVM, false},

		{"solana usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", registry.StandardSolana, true},
		{"solana 32 chars", strings.Repeat("1", 32), registry.StandardSolana, true},
		{"solana 31 chars", strings.Repeat("1", 31), registry.StandardSolana, false},
		{"solana 45 chars", strings.Repeat("1", 45), registry.StandardSolana, false},
		{"solana excluded 0", strings.Repeat("0", 40), registry.StandardSolana, false},
		{"solana excluded l", strings.Repeat("l", 40), registry.StandardSolana, false},

		{"tron T + 33 base58", "T" + strings.Repeat("a", 33), registry.StandardTron, true},
		{"tron usdt", "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", registry.StandardTron, true},
		{"tron short", "T" + strings.Repeat("a", 32), registry.StandardTron, false},
		{"tron wrong prefix", "A" + strings.Repeat("a", 33), registry.StandardTron, false},
		{"tron excluded O", "T" + strings.Repeat("O", 33), registry.StandardTron, false},

		{"sui 64 hex", "0x" + strings.Repeat("b", 64), registry.StandardSui, true},
		{"sui 40 hex", "0x" + strings.Repeat("b", 40), registry.StandardSui, false},

		{"near named", "alice.near", registry.StandardNear, true},
		{"near nested", "usdt.tether-token.near", registry.StandardNear, true},
		{"near implicit", strings.Repeat("c", 64), registry.StandardNear, true},
		{"near implicit upper", strings.Repeat("C", 64), registry.StandardNear, false},
		{"near bare name", "alice", registry.StandardNear, false},

		{"unknown standard", "0x" + strings.Repeat("a", 40), registry.WalletStandard("bitcoin"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.address, tt.standard))
		})
	}
}

func TestEmptyAddressInvalidEverywhere(t *testing.T) {
	for _, std := range registry.Standards {
		assert.False(t, IsValidAddress("", std), std)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("alice.near", registry.StandardNear))

	err := Validate("nope", registry.StandardEVM)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "nope", verr.Address)
	assert.Equal(t, registry.StandardEVM, verr.Standard)
	assert.Contains(t, err.Error(), "invalid evm address")
}

func TestCanonical(t *testing.T) {
	got, err := Canonical("0x34a52862569c6230419357418a02a90503023a1b", registry.StandardEVM)
	require.NoError(t, err)
	assert.True(t, strings.EqualFold("0x34a52862569c6230419357418a02a90503023a1b", got))
	assert.NotEqual(t, strings.ToLower(got), got)

	got, err = Canonical("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", registry.StandardSolana)
	require.NoError(t, err)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", got)

	got, err = Canonical("0x"+strings.Repeat("B", 64), registry.StandardSui)
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("b", 64), got)

	_, err = Canonical("", registry.StandardTron)
	assert.Error(t, err)
}
