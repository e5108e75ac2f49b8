package valuation

import "dcf_lite/pkg/core/calc"

// WACCInput parameters for building a discount rate from the capital
// structure. CAPM inputs are percentages on a 0-100 scale; the cost of debt
// and tax rate are fractional.
type WACCInput struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`
	Beta              float64 `json:"beta"`
	EquityRiskPremium float64 `json:"equity_risk_premium"`
	EquityValue       float64 `json:"equity_value"`
	DebtValue         float64 `json:"debt_value"`
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`
}

// WACCResult holds the calculated rates
type WACCResult struct {
	CostOfEquity float64     `json:"cost_of_equity"`
	CostOfDebt   float64     `json:"cost_of_debt"` // after-tax
	WACC         float64     `json:"wacc"`
	WeightDebt   float64     `json:"weight_debt"`
	WeightEquity float64     `json:"weight_equity"`
	Reason       calc.Reason `json:"reason,omitempty"`
}

// CalculateWACC computes the cost of equity with CAPM and blends it with the
// after-tax cost of debt.
func CalculateWACC(input WACCInput) WACCResult {
	// 1. Cost of Equity (CAPM)
	ke := calc.CostOfEquity(input.RiskFreeRate, input.Beta, input.EquityRiskPremium)

	// 2. WACC
	w := calc.EvalWACC(input.EquityValue, input.DebtValue, ke, input.PreTaxCostOfDebt, input.TaxRate)

	res := WACCResult{
		CostOfEquity: ke,
		CostOfDebt:   input.PreTaxCostOfDebt * (1 - input.TaxRate),
		WACC:         w.Value,
		Reason:       w.Reason,
	}

	// 3. Weights
	if total := input.EquityValue + input.DebtValue; total != 0 {
		res.WeightEquity = input.EquityValue / total
		res.WeightDebt = input.DebtValue / total
	}
	return res
}
