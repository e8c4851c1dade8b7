package nearintents

import "github.com/RaghavSood/bridgeswap/registry"

// tokenIDs maps registry asset IDs to Near Intents 1click token IDs.
var tokenIDs = map[string]string{
	"usdc-ethereum":  "nep141:eth-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48.omft.near",
	"usdt-ethereum":  "nep141:eth-0xdac17f958d2ee523a2206206994597c13d831ec7.omft.near",
	"usdc-arbitrum":  "nep141:arb-0xaf88d065e77c8cc2239327c5edb3a432268e5831.omft.near",
	"usdt-arbitrum":  "nep141:arb-0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9.omft.near",
	"usdc-base":      "nep141:base-0x833589fcd6edb6e08f4c7c32d4f71b54bda02913.omft.near",
	"usdc-avalanche": "nep245:v2_1.omni.hot.tg:43114_3atVJH3r5c4GqiSYmg9fECvjc47o",
	"usdc-solana":    "nep141:sol-5ce3bf3a31af18be40ba30f721101b4341690186.omft.near",
	"usdt-solana":    "nep141:sol-c800a4bd850783ccb82c2b2c7e84175443606352.omft.near",
	"usdt-tron":      "nep141:tron-d28a265909efecdcee7c5028585214ea0b96f015.omft.near",
	"usdc-near":      "nep141:17208628f84f5d6ad33f0da3bbbeb27ffcb398eac501a31bd6ad2011e36133a1",
	"usdt-near":      "nep141:usdt.tether-token.near",
}

// TokenID looks up the Near Intents token ID for an asset.
func TokenID(asset registry.Asset) (string, bool) {
	id, ok := tokenIDs[asset.ID()]
	return id, ok
}
