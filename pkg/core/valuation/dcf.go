package valuation

import (
	"errors"
	"fmt"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/calc"
	"dcf_lite/pkg/core/projection"
)

// ErrNoProjections is returned when there is no forecast to discount.
var ErrNoProjections = errors.New("no projections to value")

// Result holds the DCF roll-up outputs.
type Result struct {
	Projections     []projection.YearProjection `json:"projections"` // copy with PV filled in
	SumPV           float64                     `json:"sum_pv"`
	TerminalValue   float64                     `json:"terminal_value"`
	PVTerminalValue float64                     `json:"pv_terminal_value"`
	EnterpriseValue float64                     `json:"enterprise_value"`
	EquityValue     float64                     `json:"equity_value"`
	SharePrice      float64                     `json:"share_price"`
	TerminalReason  calc.Reason                 `json:"terminal_reason,omitempty"`
}

// Value discounts the selected cash flow of each projected year, adds the
// discounted terminal value and bridges to equity value and price per share.
//
// Levered: the flows are equity claims, so Equity = ΣPV + PV(TV) and
// EV = Equity + net debt. Unlevered: EV = ΣPV + PV(TV) and
// Equity = EV - net debt.
//
// The terminal value is discounted over the final forecast year (not N+1),
// with the mid-year flag applied as for the explicit flows.
func Value(a assumption.AssumptionSet, projs []projection.YearProjection) (Result, error) {
	if len(projs) == 0 {
		return Result{}, ErrNoProjections
	}
	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Projections: make([]projection.YearProjection, len(projs))}
	copy(res.Projections, projs)

	// 1. Explicit period
	for i := range res.Projections {
		p := &res.Projections[i]
		pv, err := calc.PresentValue(p.CashFlow(a.ModelType), a.DiscountRate, p.Year, a.MidYear)
		if err != nil {
			return Result{}, fmt.Errorf("year %d: %w", p.Year, err)
		}
		p.PV = pv
		res.SumPV += pv
	}

	// 2. Terminal value
	last := res.Projections[len(res.Projections)-1]
	tv := TerminalValue(a, last)
	res.TerminalValue = tv.Value
	res.TerminalReason = tv.Reason

	pvTV, err := calc.PresentValue(tv.Value, a.DiscountRate, last.Year, a.MidYear)
	if err != nil {
		return Result{}, fmt.Errorf("terminal value: %w", err)
	}
	res.PVTerminalValue = pvTV

	// 3. Bridge
	if a.Levered() {
		res.EquityValue = res.SumPV + pvTV
		res.EnterpriseValue = res.EquityValue + a.NetDebt
	} else {
		res.EnterpriseValue = res.SumPV + pvTV
		res.EquityValue = res.EnterpriseValue - a.NetDebt
	}
	res.SharePrice = res.EquityValue / a.SharesOutstanding

	return res, nil
}

// TerminalValue applies the selected method to the final projected year:
// perpetuity growth on its cash flow, or the exit multiple on its EBITDA.
func TerminalValue(a assumption.AssumptionSet, last projection.YearProjection) calc.Outcome {
	if a.TVMethod == assumption.TVMultiple {
		return calc.Outcome{Value: calc.TerminalValueByMultiple(last.EBITDA, a.TVInput)}
	}
	return calc.EvalTerminalValueByGrowth(last.CashFlow(a.ModelType), a.TVInput, a.DiscountRate)
}

// ImpliedSharePrice projects and values a in one step.
func ImpliedSharePrice(a assumption.AssumptionSet, years int) (float64, error) {
	projs, err := projection.Project(a, years)
	if err != nil {
		return 0, err
	}
	res, err := Value(a, projs)
	if err != nil {
		return 0, err
	}
	return res.SharePrice, nil
}
