package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/RaghavSood/bridgeswap/registry"
)

// DeriveKey derives an ECDSA private key from a mnemonic at the given account index.
// Path: m/44'/60'/0'/0/{index}
func DeriveKey(mnemonic string, index uint32) (*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("creating master key: %w", err)
	}

	// m/44'/60'/0'/0/{index}
	path := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild + 0,
		0,
		index,
	}
	key := masterKey
	for depth, child := range path {
		key, err = key.NewChildKey(child)
		if err != nil {
			return nil, fmt.Errorf("deriving level %d: %w", depth+1, err)
		}
	}

	privateKey, err := crypto.ToECDSA(key.Key)
	if err != nil {
		return nil, fmt.Errorf("converting to ECDSA: %w", err)
	}

	return privateKey, nil
}

// DeriveAddress derives an Ethereum address from a mnemonic at the given account index.
func DeriveAddress(mnemonic string, index uint32) (common.Address, error) {
	key, err := DeriveKey(mnemonic, index)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// MnemonicConnector is an EVM wallet backed by a BIP-39 mnemonic. Each account
// index is a separate address, so one mnemonic can serve many chat users.
type MnemonicConnector struct {
	provider Provider
	mnemonic string
	index    uint32
}

// NewMnemonicConnector returns a connector presenting itself as provider, which
// must be an EVM wallet.
func NewMnemonicConnector(provider Provider, mnemonic string, index uint32) (*MnemonicConnector, error) {
	if provider.Standard != registry.StandardEVM {
		return nil, &WalletError{Provider: provider.ID, Err: fmt.Errorf("mnemonic wallets only support %s", registry.StandardEVM)}
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, &WalletError{Provider: provider.ID, Err: fmt.Errorf("invalid mnemonic")}
	}
	return &MnemonicConnector{provider: provider, mnemonic: mnemonic, index: index}, nil
}

func (m *MnemonicConnector) Provider() Provider {
	return m.provider
}

func (m *MnemonicConnector) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	addr, err := DeriveAddress(m.mnemonic, m.index)
	if err != nil {
		return nil, err
	}
	return []string{addr.Hex()}, nil
}
