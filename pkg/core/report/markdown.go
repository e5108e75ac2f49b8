package report

import (
	"fmt"
	"strings"

	"dcf_lite/pkg/core/projection"
	"dcf_lite/pkg/core/utils"
	"dcf_lite/pkg/core/valuation"
)

// Markdown renders the analysis as a GitHub-flavoured Markdown summary.
func Markdown(an *valuation.Analysis) string {
	var sb strings.Builder
	inv := an.Investment
	res := an.Valuation

	sb.WriteString("# DCF Valuation Report\n\n")
	fmt.Fprintf(&sb, "_Run %s, %d-year horizon, %s model_\n\n", an.RunID, an.Years, an.Assumptions.ModelType)

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Implied Share Price | $%.2f |\n", res.SharePrice)
	fmt.Fprintf(&sb, "| Market Price | $%.2f |\n", an.Assumptions.MarketPrice)
	fmt.Fprintf(&sb, "| Enterprise Value | %.0f |\n", res.EnterpriseValue)
	fmt.Fprintf(&sb, "| Equity Value | %.0f |\n", res.EquityValue)
	fmt.Fprintf(&sb, "| PV of Terminal Value | %.0f |\n", res.PVTerminalValue)
	fmt.Fprintf(&sb, "| IRR | %.1f%% |\n", inv.IRR*100)
	fmt.Fprintf(&sb, "| Upside / Downside | %.1f%% |\n", inv.Upside*100)
	fmt.Fprintf(&sb, "| Margin of Safety | %.1f%% |\n", inv.MarginOfSafety)
	fmt.Fprintf(&sb, "| Verdict | **%s** |\n\n", inv.Verdict.Label)

	sb.WriteString("## Credit\n\n")
	fmt.Fprintf(&sb, "Interest coverage %.1fx, Debt/EBITDA %.1fx. %s\n\n",
		an.Credit.InterestCoverage, an.Credit.DebtToEBITDA, an.CreditStatus)

	sb.WriteString("## Projections\n\n")
	writeLineTable(&sb, res.Projections, an.Lines)
	if an.Growth != nil && an.Growth.RevenueCAGR != nil {
		fmt.Fprintf(&sb, "\nRevenue CAGR over %d years: %.1f%%\n", an.Growth.RevenueCAGR.Years, an.Growth.RevenueCAGR.CAGR)
	}

	var warnings []string
	for _, r := range an.Degeneracies {
		warnings = append(warnings, string(r))
	}
	if an.Growth != nil {
		for _, o := range an.Growth.Outliers {
			warnings = append(warnings, fmt.Sprintf("%s year %d: %s", o.Item, o.Year, o.Reason))
		}
	}
	if an.Linkage != nil {
		warnings = append(warnings, an.Linkage.FailedChecks...)
	}
	if len(warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	return sb.String()
}

func writeLineTable(sb *strings.Builder, projs []projection.YearProjection, lines []projection.LineItem) {
	sb.WriteString("| Line Item |")
	for _, p := range projs {
		fmt.Fprintf(sb, " Year %d |", p.Year)
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---:|", len(projs)))
	sb.WriteString("\n")
	for _, line := range lines {
		fmt.Fprintf(sb, "| %s |", line.Label)
		for _, v := range line.Values {
			fmt.Fprintf(sb, " %.0f |", v)
		}
		sb.WriteString("\n")
	}
}

// HTML renders the Markdown summary to HTML.
func HTML(an *valuation.Analysis) (string, error) {
	return utils.MarkdownToHTML(Markdown(an))
}
