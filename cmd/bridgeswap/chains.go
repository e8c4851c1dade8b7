package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RaghavSood/bridgeswap/registry"
)

var filterChain string

var chainsCmd = &cobra.Command{
	Use:     "chains",
	Aliases: []string{"ls"},
	Short:   "List supported chains, or the assets of one chain",
	Args:    cobra.NoArgs,
	RunE:    runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)

	chainsCmd.Flags().StringVar(&filterChain, "chain", "", "List the assets of this chain")
}

func runChains(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var out any
	if filterChain != "" {
		chain, ok := registry.Default.Chain(strings.ToLower(filterChain))
		if !ok {
			return fmt.Errorf("%s: %w", filterChain, registry.ErrChainNotFound)
		}
		assets := registry.Default.ListAssetsForChain(chain.ID)
		if !jsonOutput {
			fmt.Printf("\nAssets on %s:\n\n", color.YellowString(chain.Name))
			for _, a := range assets {
				fmt.Printf("  %-20s %-10s decimals=%d %s\n", color.CyanString(a.String()), a.Name, a.Decimals, color.HiBlackString(a.ContractAddress))
			}
			fmt.Println()
			return nil
		}
		out = assets
	} else {
		chains := registry.Default.ListChains()
		if !jsonOutput {
			fmt.Printf("\nSupported chains (%d):\n\n", len(chains))
			for _, c := range chains {
				fmt.Printf("  %-24s %-18s %s\n", color.CyanString(c.ID), c.Name, c.WalletStandard)
			}
			fmt.Println()
			return nil
		}
		out = chains
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
