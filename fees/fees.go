// Package fees computes the service fee charged on a swap.
package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RaghavSood/bridgeswap/registry"
)

// MaxBPS is 100% expressed in basis points.
const MaxBPS = 10000

var bpsDivisor = decimal.NewFromInt(MaxBPS)

// ComputeServiceFee returns amount * bps / 10000 when a fee collector is configured
// and bps is positive, otherwise zero.
func ComputeServiceFee(amount decimal.Decimal, bps int, collectorConfigured bool) decimal.Decimal {
	if !collectorConfigured || bps <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(bps))).Div(bpsDivisor)
}

// Policy maps wallet standards to fee collector addresses and applies one basis
// point rate to every standard that has a collector.
type Policy struct {
	Collectors map[registry.WalletStandard]string
	BPS        int
}

// NewPolicy validates the rate and drops empty collector entries.
func NewPolicy(collectors map[registry.WalletStandard]string, bps int) (Policy, error) {
	if bps < 0 || bps > MaxBPS {
		return Policy{}, fmt.Errorf("service fee bps %d out of range [0, %d]", bps, MaxBPS)
	}
	p := Policy{Collectors: make(map[registry.WalletStandard]string, len(collectors)), BPS: bps}
	for std, addr := range collectors {
		if addr != "" {
			p.Collectors[std] = addr
		}
	}
	return p, nil
}

// CollectorFor returns the fee collector address for a wallet standard.
func (p Policy) CollectorFor(std registry.WalletStandard) (string, bool) {
	addr, ok := p.Collectors[std]
	return addr, ok && addr != ""
}

// Configured reports whether fees are collected on chains of the given standard.
func (p Policy) Configured(std registry.WalletStandard) bool {
	_, ok := p.CollectorFor(std)
	return ok
}

// ServiceFee is the fee for a swap whose destination is on a chain of the given standard.
func (p Policy) ServiceFee(amount decimal.Decimal, std registry.WalletStandard) decimal.Decimal {
	return ComputeServiceFee(amount, p.BPS, p.Configured(std))
}
