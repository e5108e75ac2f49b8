// Package calc provides the deterministic valuation math behind the DCF
// calculator. This file implements discounting and terminal value methods.
package calc

import (
	"math"
)

// =============================================================================
// DISCOUNTING
// =============================================================================

// DiscountPeriod returns the exponent used to discount a cash flow received
// in the given forecast year.
//
// FORMULA: t = year - 0.5 (mid-year convention), otherwise t = year
func DiscountPeriod(year int, midYear bool) float64 {
	if midYear {
		return float64(year) - 0.5
	}
	return float64(year)
}

// PresentValue discounts a single future value.
//
// FORMULA: PV = FV / (1 + r)^t
//
// Where t follows DiscountPeriod. Rates at or below -100% have no meaningful
// discount factor and return ErrRateOutOfDomain.
func PresentValue(futureValue, rate float64, year int, midYear bool) (float64, error) {
	if err := checkRate(rate); err != nil {
		return 0, err
	}
	return futureValue / math.Pow(1+rate, DiscountPeriod(year, midYear)), nil
}

func checkRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return ErrNonFinite
	}
	if rate <= -1 {
		return ErrRateOutOfDomain
	}
	return nil
}

// =============================================================================
// TERMINAL VALUE
// =============================================================================

// TerminalValueByGrowth calculates terminal value with the growing perpetuity
// (Gordon Growth) model.
//
// FORMULA: TV = CF_N × (1 + g) / (r - g)
//
// Where:
//   - CF_N = final forecast year cash flow
//   - g = long-term growth rate
//   - r = discount rate
//
// Returns 0 when r <= g: the perpetuity does not converge.
func TerminalValueByGrowth(finalCashFlow, longTermGrowth, discountRate float64) float64 {
	return EvalTerminalValueByGrowth(finalCashFlow, longTermGrowth, discountRate).Value
}

// EvalTerminalValueByGrowth is TerminalValueByGrowth with the unstable
// perpetuity case tagged.
func EvalTerminalValueByGrowth(finalCashFlow, longTermGrowth, discountRate float64) Outcome {
	if discountRate <= longTermGrowth {
		return sentinel(0, ReasonUnstablePerpetuity)
	}
	return computed(finalCashFlow * (1 + longTermGrowth) / (discountRate - longTermGrowth))
}

// TerminalValueByMultiple calculates terminal value as an exit multiple of a
// final year metric (EBITDA in the calculator).
//
// FORMULA: TV = Metric_N × Multiple
func TerminalValueByMultiple(finalYearMetric, multiple float64) float64 {
	return finalYearMetric * multiple
}
