package projection

// Line item keys, in statement order.
var (
	SummaryLines = []LineDef{
		{"Revenue", "revenue"},
		{"EBITDA", "ebitda"},
		{"EBIT", "ebit"},
		{"UFCF (Unlevered)", "ufcf"},
		{"Net Income", "net_income"},
		{"LFCF / NCF (Levered)", "lfcf"},
	}

	ModelLines = []LineDef{
		{"Revenue", "revenue"},
		{"COGS", "cogs"},
		{"Gross Profit", "gross_profit"},
		{"SG&A", "sga"},
		{"EBITDA", "ebitda"},
		{"D&A", "da"},
		{"EBIT", "ebit"},
		{"Taxes", "taxes"},
		{"NOPAT", "nopat"},
		{"CapEx", "capex"},
		{"Change in NWC", "delta_nwc"},
		{"Unlevered FCF (UFCF)", "ufcf"},
		{"Net Income", "net_income"},
		{"Levered FCF (LFCF)", "lfcf"},
	}
)

// LineDef names one row of a projection table.
type LineDef struct {
	Label string
	Key   string
}

// Value returns the field named by key, or 0 for an unknown key.
func (p YearProjection) Value(key string) float64 {
	switch key {
	case "units":
		return p.Units
	case "price":
		return p.Price
	case "revenue":
		return p.Revenue
	case "cogs":
		return p.COGS
	case "gross_profit":
		return p.GrossProfit
	case "sga":
		return p.SGA
	case "ebitda":
		return p.EBITDA
	case "da":
		return p.DA
	case "ebit":
		return p.EBIT
	case "taxes":
		return p.Taxes
	case "nopat":
		return p.NOPAT
	case "capex":
		return p.Capex
	case "delta_nwc":
		return p.DeltaNWC
	case "ufcf":
		return p.UFCF
	case "ebt":
		return p.EBT
	case "levered_taxes":
		return p.LeveredTaxes
	case "net_income":
		return p.NetIncome
	case "lfcf":
		return p.LFCF
	case "pv":
		return p.PV
	}
	return 0
}

// LineItems transposes projections into one row per line definition.
func LineItems(projs []YearProjection, defs []LineDef) []LineItem {
	out := make([]LineItem, 0, len(defs))
	for _, d := range defs {
		vals := make([]float64, len(projs))
		for i, p := range projs {
			vals[i] = p.Value(d.Key)
		}
		out = append(out, LineItem{Label: d.Label, Key: d.Key, Values: vals})
	}
	return out
}
