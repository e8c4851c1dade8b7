package swaps

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RaghavSood/bridgeswap/registry"
)

// Aggregator identifies the integration that produced a route.
type Aggregator struct {
	ID   string `json:"id"`   // e.g. "stargate-direct"
	Name string `json:"name"` // e.g. "Stargate"
}

// Route is one priced, timed offer from a single provider for a swap intent.
// Routes are values and are never mutated after a provider returns them.
type Route struct {
	Bridge           Bridge              `json:"bridge"`
	Aggregator       Aggregator          `json:"aggregator"`
	From             registry.Asset      `json:"from"`
	To               registry.Asset      `json:"to"`
	Rate             decimal.Decimal     `json:"rate"`
	FromAmount       decimal.Decimal     `json:"from_amount"`
	ToAmount         string              `json:"to_amount"` // fixed-point at To.Decimals
	GasFeeUSD        decimal.Decimal     `json:"gas_fee_usd"`
	ServiceFee       decimal.Decimal     `json:"service_fee"`
	AggregatorFee    decimal.NullDecimal `json:"aggregator_fee"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
}

// NewRoute fills the derived fields of a route: ToAmount is rendered at the destination
// asset's precision and Rate is the unrounded output divided by the input.
func NewRoute(bridge Bridge, agg Aggregator, req QuoteRequest, out, gasFee, serviceFee decimal.Decimal, minutes int) Route {
	to := out.StringFixed(req.To.Decimals)
	rate := decimal.Zero
	if req.Amount.IsPositive() {
		rate = out.Div(req.Amount)
	}
	return Route{
		Bridge:           bridge,
		Aggregator:       agg,
		From:             req.From,
		To:               req.To,
		Rate:             rate,
		FromAmount:       req.Amount,
		ToAmount:         to,
		GasFeeUSD:        gasFee,
		ServiceFee:       serviceFee,
		EstimatedMinutes: minutes,
	}
}

// Output parses ToAmount.
func (r Route) Output() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.ToAmount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing output amount %q: %w", r.ToAmount, err)
	}
	return d, nil
}

// GasFeeDisplay renders the gas estimate as "$x.xx".
func (r Route) GasFeeDisplay() string {
	return usd(r.GasFeeUSD)
}

// ServiceFeeDisplay renders the service fee as "$x.xx".
func (r Route) ServiceFeeDisplay() string {
	return usd(r.ServiceFee)
}

func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
