package nearintents

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const Name = "nearintents"

// quoter is the subset of Client used by the provider.
type quoter interface {
	GetQuote(ctx context.Context, req oneclick.QuoteRequest) (*oneclick.QuoteResponse, error)
}

// Provider prices routes with dry 1click quotes. No deposit address is requested,
// so quotes cannot be executed directly.
type Provider struct {
	client quoter
	// quoteAddresses supplies the refund and recipient addresses required by the
	// API for each wallet standard.
	quoteAddresses map[registry.WalletStandard]string
	logger         *zap.Logger
}

func NewProvider(apiKey string, quoteAddresses map[registry.WalletStandard]string, httpClient *http.Client, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		client:         NewClient(apiKey, httpClient),
		quoteAddresses: quoteAddresses,
		logger:         logger.Named(Name),
	}
}

func (p *Provider) Name() string {
	return Name
}

// Eligible requires both tokens to be listed on 1click, a cross-chain pair and
// a quote address for both wallet standards.
func (p *Provider) Eligible(from, to registry.Asset) bool {
	if from.Chain.ID == to.Chain.ID {
		return false
	}
	if _, ok := TokenID(from); !ok {
		return false
	}
	if _, ok := TokenID(to); !ok {
		return false
	}
	return p.quoteAddresses[from.Chain.WalletStandard] != "" && p.quoteAddresses[to.Chain.WalletStandard] != ""
}

func (p *Provider) Quote(ctx context.Context, req swaps.QuoteRequest) (swaps.Route, error) {
	if !p.Eligible(req.From, req.To) {
		return swaps.Route{}, swaps.ErrIneligible
	}

	originAsset, _ := TokenID(req.From)
	destAsset, _ := TokenID(req.To)
	amount := req.Amount.Shift(req.From.Decimals).Truncate(0)
	if !amount.IsPositive() {
		return swaps.Route{}, fmt.Errorf("amount %s below %s precision", req.Amount, req.From)
	}

	quoteReq := *oneclick.NewQuoteRequest(
		true,           // dry
		"EXACT_INPUT",  // swapType
		100,            // slippageTolerance (1%)
		originAsset,    // originAsset
		"ORIGIN_CHAIN", // depositType
		destAsset,      // destinationAsset
		amount.String(),
		p.quoteAddresses[req.From.Chain.WalletStandard], // refundTo
		"ORIGIN_CHAIN", // refundType
		p.quoteAddresses[req.To.Chain.WalletStandard], // recipient
		"DESTINATION_CHAIN", // recipientType
		time.Now().Add(60*time.Minute),
	)

	resp, err := p.client.GetQuote(ctx, quoteReq)
	if err != nil {
		return swaps.Route{}, err
	}

	q := resp.GetQuote()
	p.logger.Debug("quote received",
		zap.Stringer("from", req.From),
		zap.Stringer("to", req.To),
		zap.String("amount_out", q.GetAmountOutFormatted()),
		zap.Any("correlation_id", resp.CorrelationId),
	)

	return routeFromQuote(req, q.GetAmountOutFormatted(), float64(q.GetTimeEstimate()))
}

// routeFromQuote converts a 1click quote into a route. The service fee is
// deducted from the quoted output; 1click itself reports no separate gas fee.
func routeFromQuote(req swaps.QuoteRequest, amountOut string, timeEstimateSec float64) (swaps.Route, error) {
	out, err := decimal.NewFromString(amountOut)
	if err != nil {
		return swaps.Route{}, fmt.Errorf("parsing amountOutFormatted %q: %w", amountOut, err)
	}

	serviceFee := req.ServiceFee()
	minutes := int(math.Ceil(timeEstimateSec / 60))
	if minutes < 1 {
		minutes = 1
	}

	bridge := swaps.FindBridge("NEAR Intents")
	return swaps.NewRoute(bridge, swaps.Aggregator{ID: "nearintents-1click", Name: "NEAR Intents"}, req,
		out.Sub(serviceFee), decimal.Zero, serviceFee, minutes), nil
}
