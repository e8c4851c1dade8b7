package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bridgeswap",
	Short: "Cross-chain stablecoin swap route aggregator",
	Long: `bridgeswap compares cross-chain swap routes across bridge providers and
executes the selected one.

Examples:
  bridgeswap quote 100 USDT@ethereum USDC@polygon
  bridgeswap serve --config config.json
  bridgeswap chains --chain solana
  bridgeswap history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (JSON)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}
