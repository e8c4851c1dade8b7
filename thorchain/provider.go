// Package thorchain quotes cross-chain stablecoin swaps through THORChain's
// thornode quote endpoint.
package thorchain

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const Name = "thorchain"

// THORChain represents every asset with 8 decimals.
const thorDecimals = 8

// maxAmount is the largest base-unit amount the quote endpoint accepts.
var maxAmount = decimal.NewFromInt(math.MaxInt64)

type Provider struct {
	client       *Client
	destinations map[registry.WalletStandard]string
	logger       *zap.Logger
}

// NewProvider creates the adapter. destinations supplies a recipient per wallet
// standard so quotes include the outbound fee for a real address.
func NewProvider(baseURL string, destinations map[registry.WalletStandard]string, httpClient *http.Client, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		client:       NewClient(baseURL, httpClient),
		destinations: destinations,
		logger:       logger.Named(Name),
	}
}

func (p *Provider) Name() string {
	return Name
}

// Eligible requires a cross-chain pair of THORChain-listed stablecoins.
func (p *Provider) Eligible(from, to registry.Asset) bool {
	if from.Chain.ID == to.Chain.ID {
		return false
	}
	_, okFrom := AssetNotation(from)
	_, okTo := AssetNotation(to)
	return okFrom && okTo
}

func (p *Provider) Quote(ctx context.Context, req swaps.QuoteRequest) (swaps.Route, error) {
	if !p.Eligible(req.From, req.To) {
		return swaps.Route{}, swaps.ErrIneligible
	}

	fromAsset, _ := AssetNotation(req.From)
	toAsset, _ := AssetNotation(req.To)
	amount := req.Amount.Shift(thorDecimals).Truncate(0)
	if !amount.IsPositive() {
		return swaps.Route{}, fmt.Errorf("amount %s below thorchain precision", req.Amount)
	}
	if amount.GreaterThan(maxAmount) {
		return swaps.Route{}, fmt.Errorf("amount %s exceeds thorchain maximum", req.Amount)
	}

	resp, err := p.client.GetQuote(ctx, fromAsset, toAsset, p.destinations[req.To.Chain.WalletStandard], amount.IntPart())
	if err != nil {
		return swaps.Route{}, err
	}

	p.logger.Debug("quote received",
		zap.Stringer("from", req.From),
		zap.Stringer("to", req.To),
		zap.String("expected_amount_out", resp.ExpectedAmountOut),
		zap.String("warning", resp.Warning),
	)

	return routeFromQuote(req, resp)
}

// routeFromQuote converts a thornode quote into a route. The outbound fee is
// the gas cost of the destination transaction; the total fee is reported as
// the aggregator fee.
func routeFromQuote(req swaps.QuoteRequest, q *QuoteResponse) (swaps.Route, error) {
	out, err := fromThorUnits(q.ExpectedAmountOut)
	if err != nil {
		return swaps.Route{}, fmt.Errorf("parsing expected_amount_out: %w", err)
	}
	outbound, err := fromThorUnits(q.Fees.Outbound)
	if err != nil {
		return swaps.Route{}, fmt.Errorf("parsing outbound fee: %w", err)
	}

	seconds := q.TotalSwapSeconds
	if seconds == 0 {
		seconds = q.OutboundDelaySecs
	}
	minutes := int(math.Ceil(float64(seconds) / 60))
	if minutes < 1 {
		minutes = 1
	}

	serviceFee := req.ServiceFee()
	bridge := swaps.FindBridge("THORChain")
	route := swaps.NewRoute(bridge, swaps.Aggregator{ID: "thorchain-direct", Name: bridge.Name}, req,
		out.Sub(serviceFee), outbound, serviceFee, minutes)

	if q.Fees.Total != "" {
		total, err := fromThorUnits(q.Fees.Total)
		if err != nil {
			return swaps.Route{}, fmt.Errorf("parsing total fee: %w", err)
		}
		route.AggregatorFee = decimal.NewNullDecimal(total)
	}
	return route, nil
}

func fromThorUnits(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-thorDecimals), nil
}
