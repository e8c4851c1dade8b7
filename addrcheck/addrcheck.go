// Package addrcheck validates receiver addresses against the address format of a
// wallet standard. Checks are purely syntactic: no checksum verification and no
// on-chain lookups.
package addrcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"github.com/RaghavSood/bridgeswap/registry"
)

var (
	solanaRe = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
	tronRe   = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
	suiRe    = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
	nearRe   = regexp.MustCompile(`(^([\w-]+\.)+[\w-]+$)|(^[a-f0-9]{64}$)`)
)

// ValidationError reports a receiver address that does not match its chain's format.
type ValidationError struct {
	Address  string
	Standard registry.WalletStandard
}

func (e *ValidationError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("empty %s address", e.Standard)
	}
	return fmt.Sprintf("invalid %s address %q", e.Standard, e.Address)
}

// IsValidAddress reports whether address is well-formed for the wallet standard.
// Empty addresses and unknown standards are always invalid.
func IsValidAddress(address string, standard registry.WalletStandard) bool {
	if address == "" {
		return false
	}

	switch standard {
	case registry.StandardEVM:
		// IsHexAddress also accepts a missing or upper-case prefix.
		return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
	case registry.StandardSolana:
		return solanaRe.MatchString(address)
	case registry.StandardTron:
		return tronRe.MatchString(address)
	case registry.StandardSui:
		return suiRe.MatchString(address)
	case registry.StandardNear:
		return nearRe.MatchString(address)
	default:
		return false
	}
}

// Validate is IsValidAddress returning a *ValidationError on failure.
func Validate(address string, standard registry.WalletStandard) error {
	if !IsValidAddress(address, standard) {
		return &ValidationError{Address: address, Standard: standard}
	}
	return nil
}

// Canonical returns the display form of a valid address: EIP-55 checksum for EVM,
// re-encoded base58 for Solana and lower-case hex for Sui. Solana addresses that
// pass the syntax check but do not decode to 32 bytes are rejected here.
func Canonical(address string, standard registry.WalletStandard) (string, error) {
	if err := Validate(address, standard); err != nil {
		return "", err
	}

	switch standard {
	case registry.StandardEVM:
		return common.HexToAddress(address).Hex(), nil
	case registry.StandardSolana:
		pk, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return "", &ValidationError{Address: address, Standard: standard}
		}
		return pk.String(), nil
	case registry.StandardSui:
		return strings.ToLower(address), nil
	default:
		return address, nil
	}
}
