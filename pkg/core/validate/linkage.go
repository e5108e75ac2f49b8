package validate

import (
	"fmt"
	"math"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/projection"
)

// =============================================================================
// FORECAST LINKAGE VALIDATION
// =============================================================================

// DefaultTolerance is the relative difference accepted by a linkage check. It
// is scaled by the expected value, with a floor of 1 so that figures near zero
// are compared absolutely.
const DefaultTolerance = 1e-6

// Linkage is one identity checked for one year.
type Linkage struct {
	Name       string  `json:"name"`
	Expected   float64 `json:"expected"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
	IsLinked   bool    `json:"is_linked"`
}

// LinkageReport contains the identity checks of every projected year.
type LinkageReport struct {
	Checked      int      `json:"checked"`
	AllPassed    bool     `json:"all_passed"`
	FailedChecks []string `json:"failed_checks,omitempty"`
}

// YearLinkages checks the statement identities of a single year:
//
//	Gross Profit = Revenue - COGS
//	EBITDA       = Gross Profit - SG&A
//	EBIT         = EBITDA - D&A
//	NOPAT        = EBIT - Taxes
//	UFCF         = NOPAT + D&A - CapEx - ΔNWC
//	EBT          = EBIT - Interest
//	Net Income   = EBT - Levered Taxes
//	LFCF         = Net Income + D&A - CapEx - ΔNWC + Net Borrowing
func YearLinkages(a assumption.AssumptionSet, p projection.YearProjection, tolerance float64) []Linkage {
	link := func(name string, expected, actual float64) Linkage {
		diff := actual - expected
		return Linkage{
			Name:       name,
			Expected:   expected,
			Actual:     actual,
			Difference: diff,
			IsLinked:   math.Abs(diff) <= tolerance*math.Max(1, math.Abs(expected)),
		}
	}
	reinvest := p.DA - p.Capex - p.DeltaNWC
	return []Linkage{
		link("Gross Profit = Revenue - COGS", p.Revenue-p.COGS, p.GrossProfit),
		link("EBITDA = Gross Profit - SG&A", p.GrossProfit-p.SGA, p.EBITDA),
		link("EBIT = EBITDA - D&A", p.EBITDA-p.DA, p.EBIT),
		link("NOPAT = EBIT - Taxes", p.EBIT-p.Taxes, p.NOPAT),
		link("UFCF = NOPAT + D&A - CapEx - ΔNWC", p.NOPAT+reinvest, p.UFCF),
		link("EBT = EBIT - Interest", p.EBIT-a.InterestExpense, p.EBT),
		link("Net Income = EBT - Taxes", p.EBT-p.LeveredTaxes, p.NetIncome),
		link("LFCF = NI + D&A - CapEx - ΔNWC + Borrowing", p.NetIncome+reinvest+a.NetBorrowing, p.LFCF),
	}
}

// ValidateLinkages runs YearLinkages over the forecast and also checks that
// years are consecutive from 1.
func ValidateLinkages(a assumption.AssumptionSet, projs []projection.YearProjection, tolerance float64) *LinkageReport {
	report := &LinkageReport{AllPassed: true}

	for i, p := range projs {
		if p.Year != i+1 {
			report.AllPassed = false
			report.FailedChecks = append(report.FailedChecks, fmt.Sprintf("Year %d out of sequence at position %d", p.Year, i+1))
		}
		for _, l := range YearLinkages(a, p, tolerance) {
			report.Checked++
			if !l.IsLinked {
				report.AllPassed = false
				report.FailedChecks = append(report.FailedChecks, fmt.Sprintf("Year %d: %s (off by %.4f)", p.Year, l.Name, l.Difference))
			}
		}
	}

	return report
}
