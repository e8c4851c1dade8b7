package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RaghavSood/bridgeswap/registry"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent swaps, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	txs, err := a.store.GetTransactions(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(txs)
	}

	if len(txs) == 0 {
		fmt.Println("No swaps yet.")
		return nil
	}

	for _, tx := range txs {
		fmt.Printf("%s  %s %s@%s -> %s %s@%s via %s  %s\n",
			color.HiBlackString(tx.CreatedAt.Format("2006-01-02 15:04:05")),
			tx.FromAmount, tx.FromSymbol, tx.FromChain,
			tx.ToAmount, tx.ToSymbol, tx.ToChain,
			tx.Bridge,
			statusColor(tx.Status))
		link := tx.TxHash
		if chain, ok := registry.Default.Chain(tx.FromChain); ok {
			if url := chain.ExplorerTxURL(tx.TxHash); url != "" {
				link = url
			}
		}
		fmt.Printf("  %s\n", color.CyanString(link))
	}
	return nil
}

func statusColor(status string) string {
	switch status {
	case "success":
		return color.GreenString(status)
	case "pending":
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}
