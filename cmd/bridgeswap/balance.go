package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RaghavSood/bridgeswap/addrcheck"
	"github.com/RaghavSood/bridgeswap/registry"
)

var balanceCmd = &cobra.Command{
	Use:     "balance <address> <asset>",
	Short:   "Show the balance of an address for an asset, e.g. balance 0xabc... USDT@ethereum",
	Args:    cobra.ExactArgs(2),
	RunE:    runBalance,
	Example: "  bridgeswap balance 0x742d35Cc6634C0532925a3b844Bc454e4438f44e USDC@base",
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	asset, err := registry.Default.Resolve(args[1])
	if err != nil {
		return err
	}
	if err := addrcheck.Validate(args[0], asset.Chain.WalletStandard); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.balances.Supports(asset.Chain) {
		return fmt.Errorf("no rpc endpoint configured for %s", asset.Chain.ID)
	}

	balance, err := a.balances.GetBalance(context.Background(), args[0], asset)
	if err != nil {
		return fmt.Errorf("fetching balance: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{
			"address": args[0],
			"asset":   asset.String(),
			"balance": balance.String(),
		})
	}

	fmt.Printf("%s %s\n", color.GreenString(balance.String()), color.CyanString(asset.String()))
	return nil
}
