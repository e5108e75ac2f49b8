package calc

// CoverageSentinel is reported as interest coverage when there is no interest
// expense to cover.
const CoverageSentinel = 99.0

// Thresholds for the credit profile shown next to the metrics.
const (
	investmentGradeCoverage = 3.0
	investmentGradeLeverage = 4.0
)

// CreditStatus is the one-line credit profile derived from CreditMetrics.
type CreditStatus string

const (
	CreditInvestmentGrade CreditStatus = "Strong Credit Profile: Investment Grade."
	CreditCovenantWarning CreditStatus = "Covenant Warning: High Leverage detected."
)

// CreditMetrics holds the two ratios lenders look at first.
type CreditMetrics struct {
	InterestCoverage float64 `json:"interest_coverage"`
	DebtToEBITDA     float64 `json:"debt_to_ebitda"`

	CoverageReason Reason `json:"coverage_reason,omitempty"`
	LeverageReason Reason `json:"leverage_reason,omitempty"`
}

// Credit computes interest coverage (EBIT / interest) and leverage
// (debt / EBITDA). Zero interest yields CoverageSentinel, non-positive EBITDA
// yields a leverage of 0.
func Credit(ebit, interestExpense, totalDebt, ebitda float64) CreditMetrics {
	var m CreditMetrics
	if interestExpense != 0 {
		m.InterestCoverage = ebit / interestExpense
	} else {
		m.InterestCoverage = CoverageSentinel
		m.CoverageReason = ReasonZeroInterest
	}
	if ebitda > 0 {
		m.DebtToEBITDA = totalDebt / ebitda
	} else {
		m.LeverageReason = ReasonNonPositiveEBITDA
	}
	return m
}

// Status classifies the metrics as investment grade when coverage > 3x and
// leverage < 4x.
func (m CreditMetrics) Status() CreditStatus {
	if m.InterestCoverage > investmentGradeCoverage && m.DebtToEBITDA < investmentGradeLeverage {
		return CreditInvestmentGrade
	}
	return CreditCovenantWarning
}

// Reasons lists the degenerate conditions hit while computing the metrics.
func (m CreditMetrics) Reasons() []Reason {
	var out []Reason
	if m.CoverageReason != ReasonNone {
		out = append(out, m.CoverageReason)
	}
	if m.LeverageReason != ReasonNone {
		out = append(out, m.LeverageReason)
	}
	return out
}
