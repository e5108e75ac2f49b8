package calc

// =============================================================================
// COST OF CAPITAL
// =============================================================================

// CostOfEquity calculates the required return on equity using CAPM. Inputs
// are percentages on a 0-100 scale, the result is fractional.
//
// FORMULA: r_e = r_f/100 + β × (ERP/100)
func CostOfEquity(riskFreeRate, beta, equityRiskPremium float64) float64 {
	return riskFreeRate/100 + beta*(equityRiskPremium/100)
}

// WACC blends the cost of equity and the after-tax cost of debt by market
// value weights.
//
// FORMULA: WACC = E/V × r_e + D/V × r_d × (1 - T)
//
// Returns 0 when E + D == 0.
func WACC(equity, debt, costOfEquity, costOfDebt, taxRate float64) float64 {
	return EvalWACC(equity, debt, costOfEquity, costOfDebt, taxRate).Value
}

// EvalWACC is WACC with the zero capital base tagged.
func EvalWACC(equity, debt, costOfEquity, costOfDebt, taxRate float64) Outcome {
	total := equity + debt
	if total == 0 {
		return sentinel(0, ReasonZeroCapital)
	}
	we := equity / total
	wd := debt / total
	return computed(we*costOfEquity + wd*costOfDebt*(1-taxRate))
}
