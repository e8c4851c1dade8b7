package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <from> <to>",
	Short: "Compare routes for a swap",
	Long: `Query every enabled provider and print the routes ranked by output amount.
Assets use SYMBOL@chain notation.

Examples:
  bridgeswap quote 100 USDT@ethereum USDC@polygon
  bridgeswap quote 2500 USDC@arbitrum USDC@solana --json`,
	Args: cobra.ExactArgs(3),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	amount := args[0]
	if _, ok := swaps.ParseAmount(amount); !ok {
		return fmt.Errorf("amount must be a positive number, got %q", amount)
	}
	from, err := registry.Default.Resolve(args[1])
	if err != nil {
		return err
	}
	to, err := registry.Default.Resolve(args[2])
	if err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	if !jsonOutput {
		s.Suffix = " Finding routes..."
		s.Start()
	}
	routes, err := a.manager.GetQuotes(context.Background(), amount, from, to)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		var aggErr *swaps.AggregationError
		if errors.As(err, &aggErr) {
			for _, e := range aggErr.Errors {
				color.Red("  %v", e)
			}
		}
		return err
	}

	ranked := swaps.Rank(routes)
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	printRoutes(amount, from, to, ranked)
	return nil
}

func printRoutes(amount string, from, to registry.Asset, routes []swaps.RankedRoute) {
	fmt.Printf("\n  %s %s -> %s\n\n", amount, color.YellowString(from.String()), color.YellowString(to.String()))

	if len(routes) == 0 {
		color.Yellow("  No routes found")
		fmt.Println()
		return
	}

	for i, r := range routes {
		name := fmt.Sprintf("%d. %-10s", i+1, r.Bridge.Name)
		var tags string
		if r.BestRate {
			name = color.GreenString(name)
			tags += color.GreenString(" [best rate]")
		}
		if r.Fastest {
			tags += color.CyanString(" [fastest]")
		}
		fmt.Printf("  %s%s\n", name, tags)
		fmt.Printf("     Receive:     %s %s\n", r.ToAmount, r.To.Symbol)
		fmt.Printf("     Rate:        %s\n", r.Rate.StringFixed(6))
		fmt.Printf("     Gas fee:     %s\n", r.GasFeeDisplay())
		fmt.Printf("     Service fee: %s\n", r.ServiceFeeDisplay())
		fmt.Printf("     ETA:         ~%d min\n", r.EstimatedMinutes)
		fmt.Printf("     Via:         %s\n\n", color.HiBlackString(r.Aggregator.ID))
	}
}
