package swaps

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RaghavSood/bridgeswap/fees"
	"github.com/RaghavSood/bridgeswap/metrics"
	"github.com/RaghavSood/bridgeswap/registry"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 10 * time.Second

// Manager fans a swap intent out to every registered provider and ranks the results.
type Manager struct {
	providers []Provider
	policy    fees.Policy
	timeout   time.Duration
	logger    *zap.Logger
}

// NewManager creates a Manager with the given providers. Registration order is the
// tie-break order when two routes have the same output.
func NewManager(logger *zap.Logger, policy fees.Policy, providers ...Provider) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		providers: providers,
		policy:    policy,
		timeout:   DefaultProviderTimeout,
		logger:    logger.Named("aggregator"),
	}
}

// SetProviderTimeout changes the per-provider bound. Zero disables it.
func (m *Manager) SetProviderTimeout(d time.Duration) {
	m.timeout = d
}

// Providers returns the registered provider names in registration order.
func (m *Manager) Providers() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return names
}

// Policy returns the fee policy applied to quote requests.
func (m *Manager) Policy() fees.Policy {
	return m.policy
}

// ParseAmount parses a user-entered amount. ok is false unless the value is a
// positive number.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

type outcome struct {
	route Route
	out   decimal.Decimal
	err   error
}

// GetQuotes queries all providers concurrently and returns their routes sorted by
// output amount, highest first. Ineligible and failed providers are dropped. An
// *AggregationError is returned only when every provider failed. An amount that
// is not a positive number yields no routes.
func (m *Manager) GetQuotes(ctx context.Context, amount string, from, to registry.Asset) ([]Route, error) {
	value, ok := ParseAmount(amount)
	if !ok {
		return nil, nil
	}

	std := to.Chain.WalletStandard
	configured := m.policy.Configured(std)
	if configured {
		collector, _ := m.policy.CollectorFor(std)
		m.logger.Debug("using fee collector", zap.String("standard", string(std)), zap.String("collector", collector))
	} else {
		m.logger.Debug("no fee collector configured, service fee disabled", zap.String("standard", string(std)))
	}

	req := QuoteRequest{
		Amount:                 value,
		From:                   from,
		To:                     to,
		FeeBPS:                 m.policy.BPS,
		FeeCollectorConfigured: configured,
	}

	start := time.Now()
	results := make([]outcome, len(m.providers))

	// Every goroutine returns nil so one provider's failure never cancels another.
	var g errgroup.Group
	for i, p := range m.providers {
		g.Go(func() error {
			results[i] = m.quote(ctx, p, req)
			return nil
		})
	}
	_ = g.Wait()

	metrics.AggregationDuration.Observe(time.Since(start).Seconds())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		routes []outcome
		errs   []error
	)
	for _, r := range results {
		switch {
		case r.err == nil:
			routes = append(routes, r)
		case errors.Is(r.err, ErrIneligible):
		default:
			errs = append(errs, r.err)
		}
	}

	if len(m.providers) > 0 && len(errs) == len(m.providers) {
		metrics.AggregationFailures.Inc()
		m.logger.Warn("all providers failed", zap.Int("providers", len(errs)), zap.Error(errs[0]))
		return nil, &AggregationError{Message: errs[0].Error(), Errors: errs}
	}

	slices.SortStableFunc(routes, func(a, b outcome) int {
		return b.out.Cmp(a.out)
	})

	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = r.route
	}

	metrics.AggregationRoutes.Observe(float64(len(out)))
	m.logger.Info("aggregated quotes",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("amount", value.String()),
		zap.Int("routes", len(out)),
		zap.Int("failed", len(errs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if len(out) == 0 {
		m.logger.Info("no valid routes found from any provider")
	}

	return out, nil
}

func (m *Manager) quote(ctx context.Context, p Provider, req QuoteRequest) outcome {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	name := p.Name()
	start := time.Now()
	route, err := callProvider(ctx, p, req)
	metrics.ProviderQuoteDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if errors.Is(err, ErrIneligible) {
		metrics.ProviderQuotes.WithLabelValues(name, metrics.OutcomeIneligible).Inc()
		m.logger.Debug("provider ineligible", zap.String("provider", name))
		return outcome{err: ErrIneligible}
	}

	var out decimal.Decimal
	if err == nil {
		out, err = route.Output()
	}
	if err != nil {
		metrics.ProviderQuotes.WithLabelValues(name, metrics.OutcomeError).Inc()
		m.logger.Warn("provider quote failed", zap.String("provider", name), zap.Error(err))
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = &ProviderError{Provider: name, Err: err}
		}
		return outcome{err: err}
	}

	metrics.ProviderQuotes.WithLabelValues(name, metrics.OutcomeRoute).Inc()
	return outcome{route: route, out: out}
}

// callProvider returns when the provider answers or ctx is done, whichever
// comes first, so an adapter that ignores ctx cannot hold up the aggregation.
// The abandoned call finishes in the background.
func callProvider(ctx context.Context, p Provider, req QuoteRequest) (Route, error) {
	type result struct {
		route Route
		err   error
	}
	done := make(chan result, 1)
	go func() {
		route, err := p.Quote(ctx, req)
		done <- result{route, err}
	}()

	select {
	case r := <-done:
		return r.route, r.err
	case <-ctx.Done():
		return Route{}, ctx.Err()
	}
}

// String describes the manager's provider set, used in startup logs.
func (m *Manager) String() string {
	return fmt.Sprintf("manager(%s, timeout=%s)", strings.Join(m.Providers(), ","), m.timeout)
}
