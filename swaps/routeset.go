package swaps

import "github.com/shopspring/decimal"

// RankedRoute is a route annotated for display. Both flags are computed
// independently, so one route may carry both and ties flag every tied route.
type RankedRoute struct {
	Route
	BestRate bool `json:"best_rate"`
	Fastest  bool `json:"fastest"`
}

// Rank annotates routes with best-rate (maximum output) and fastest (minimum
// estimated minutes) flags. Order is preserved.
func Rank(routes []Route) []RankedRoute {
	ranked := make([]RankedRoute, len(routes))
	if len(routes) == 0 {
		return ranked
	}

	outputs := make([]decimal.Decimal, len(routes))
	var best decimal.Decimal
	fastest := routes[0].EstimatedMinutes
	for i, r := range routes {
		out, err := r.Output()
		if err != nil {
			out = decimal.Zero
		}
		outputs[i] = out
		if i == 0 || out.GreaterThan(best) {
			best = out
		}
		if r.EstimatedMinutes < fastest {
			fastest = r.EstimatedMinutes
		}
	}

	for i, r := range routes {
		ranked[i] = RankedRoute{
			Route:    r,
			BestRate: outputs[i].Equal(best),
			Fastest:  r.EstimatedMinutes == fastest,
		}
	}
	return ranked
}
