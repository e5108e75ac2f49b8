package valuation

import (
	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/calc"
	"dcf_lite/pkg/core/projection"
)

// Investment summarises the return a buyer at the market price would earn.
type Investment struct {
	TargetValue    float64        `json:"target_value"` // market value the IRR is solved against
	IRR            float64        `json:"irr"`
	IRRDetail      calc.IRRResult `json:"irr_detail"`
	Upside         float64        `json:"upside"`           // fractional
	MarginOfSafety float64        `json:"margin_of_safety"` // percent
	Hurdle         float64        `json:"hurdle"`
	Verdict        Verdict        `json:"verdict"`
}

// IRRTarget is the market value of the claim being valued: equity at market
// for the levered model, equity plus net debt for the unlevered model.
func IRRTarget(a assumption.AssumptionSet) float64 {
	equity := a.MarketPrice * a.SharesOutstanding
	if a.Levered() {
		return equity
	}
	return equity + a.NetDebt
}

// Upside is implied/market - 1, or 0 without a market price.
func Upside(implied, market float64) float64 {
	if market <= 0 {
		return 0
	}
	return implied/market - 1
}

// MarginOfSafety is (1 - market/implied) in percent, or 0 when the implied
// price is not positive.
func MarginOfSafety(implied, market float64) float64 {
	if implied <= 0 {
		return 0
	}
	return (1 - market/implied) * 100
}

// EvaluateInvestment solves the IRR of buying at the market price and
// classifies the result, using the discount rate as the hurdle.
func EvaluateInvestment(a assumption.AssumptionSet, res Result) Investment {
	cfs := projection.CashFlows(res.Projections, a.ModelType)
	target := IRRTarget(a)
	irr := calc.SolveIRRDetail(cfs, res.TerminalValue, target, a.MidYear)

	inv := Investment{
		TargetValue:    target,
		IRR:            irr.Rate,
		IRRDetail:      irr,
		Upside:         Upside(res.SharePrice, a.MarketPrice),
		MarginOfSafety: MarginOfSafety(res.SharePrice, a.MarketPrice),
		Hurdle:         a.DiscountRate,
	}
	inv.Verdict = GetVerdict(inv.Upside, inv.IRR, inv.Hurdle)
	return inv
}
