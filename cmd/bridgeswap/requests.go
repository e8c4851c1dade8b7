package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var requestsLimit int64

var requestsCmd = &cobra.Command{
	Use:     "requests <provider>",
	Short:   "Show logged API calls made to a quote provider, newest first",
	Args:    cobra.ExactArgs(1),
	RunE:    runRequests,
	Example: "  bridgeswap requests nearintents --limit 5",
}

func init() {
	rootCmd.AddCommand(requestsCmd)

	requestsCmd.Flags().Int64VarP(&requestsLimit, "limit", "n", 20, "Number of requests to show")
}

func runRequests(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	reqs, err := a.store.RecentAPIRequests(context.Background(), args[0], requestsLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reqs)
	}

	if len(reqs) == 0 {
		fmt.Printf("No requests logged for %s.\n", args[0])
		return nil
	}

	for _, r := range reqs {
		status := color.HiBlackString("---")
		if r.ResponseStatus.Valid {
			status = fmt.Sprintf("%d", r.ResponseStatus.Int64)
			if r.ResponseStatus.Int64 >= 400 {
				status = color.RedString(status)
			} else {
				status = color.GreenString(status)
			}
		}
		fmt.Printf("%s  %-6s %s %s %dms\n",
			color.HiBlackString(r.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			r.Method, status, r.Url, r.DurationMs.Int64)
		if r.Error.Valid {
			fmt.Printf("    %s\n", color.RedString(r.Error.String))
		}
	}
	return nil
}
