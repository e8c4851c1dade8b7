package bot

import (
	"fmt"
	"strings"

	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
)

func formatRoutes(snap session.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%d route(s)* for %s `%s` -> `%s`\n\n", len(snap.Routes), snap.Amount, snap.From.String(), snap.To.String())

	for i, r := range snap.Routes {
		marker := "  "
		if i == snap.Selected {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s*%d. %s*", marker, i+1, r.Bridge.Name)
		if r.BestRate {
			sb.WriteString(" [best rate]")
		}
		if r.Fastest {
			sb.WriteString(" [fastest]")
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "   Receive `%s %s`\n", r.ToAmount, r.To.Symbol)
		fmt.Fprintf(&sb, "   Rate %s, gas %s, fee %s, ~%d min\n", r.Rate.StringFixed(6), r.GasFeeDisplay(), r.ServiceFeeDisplay(), r.EstimatedMinutes)
	}

	if snap.Blocker != "" {
		fmt.Fprintf(&sb, "\nNext: %s", snap.Blocker)
	} else {
		sb.WriteString("\nUse /pick <n> to change route, /swap to execute.")
	}
	return sb.String()
}

func formatTransaction(tx db.Transaction, chain registry.Chain) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Swap completed* via %s\n", tx.Bridge)
	fmt.Fprintf(&sb, "Sent `%s %s` on %s\n", tx.FromAmount, tx.FromSymbol, tx.FromChain)
	fmt.Fprintf(&sb, "Received `%s %s` on %s\n", tx.ToAmount, tx.ToSymbol, tx.ToChain)
	fmt.Fprintf(&sb, "Tx: `%s`", tx.TxHash)
	if url := chain.ExplorerTxURL(tx.TxHash); url != "" {
		fmt.Fprintf(&sb, "\n[View on explorer](%s)", url)
	}
	return sb.String()
}

func formatHistory(txs []db.Transaction) string {
	var sb strings.Builder
	sb.WriteString("*Recent swaps*\n")
	for _, tx := range txs {
		fmt.Fprintf(&sb, "%s  %s %s@%s -> %s %s@%s via %s\n  `%s`\n",
			tx.CreatedAt.Format("2006-01-02 15:04"),
			tx.FromAmount, tx.FromSymbol, tx.FromChain,
			tx.ToAmount, tx.ToSymbol, tx.ToChain,
			tx.Bridge, tx.TxHash)
	}
	return sb.String()
}
