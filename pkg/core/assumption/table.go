package assumption

import (
	"strings"

	"dcf_lite/pkg/core/ingest"
)

type tableRule struct {
	keywords []string
	field    string
	set      func(*AssumptionSet, float64)
}

var tableRules = []tableRule{
	{[]string{"unit", "volume"}, "units", func(a *AssumptionSet, v float64) { a.Units = v }},
	{[]string{"price"}, "price", func(a *AssumptionSet, v float64) { a.Price = v }},
	{[]string{"debt"}, "net_debt", func(a *AssumptionSet, v float64) { a.NetDebt = v }},
	{[]string{"shares"}, "shares_outstanding", func(a *AssumptionSet, v float64) { a.SharesOutstanding = v }},
}

// WithTable returns a copy of a with fields prefilled from a pasted table.
// Each row is keyed by its lower-cased first cell and contributes its last
// cell when that cell is numeric:
//
//	unit / volume -> Units
//	price         -> Price
//	debt          -> NetDebt
//	shares        -> SharesOutstanding
//
// A row may match more than one key; later rows win.
func (a AssumptionSet) WithTable(grid ingest.Grid) AssumptionSet {
	eachMatch(grid, func(r tableRule, v float64) { r.set(&a, v) })
	return a
}

// PrefilledFields lists the values WithTable would set, keyed by JSON field
// name.
func PrefilledFields(grid ingest.Grid) map[string]float64 {
	out := map[string]float64{}
	eachMatch(grid, func(r tableRule, v float64) { out[r.field] = v })
	return out
}

func eachMatch(grid ingest.Grid, fn func(tableRule, float64)) {
	for _, row := range grid {
		if len(row) < 2 {
			continue
		}
		last := row[len(row)-1]
		if !last.IsNumber {
			continue
		}
		key := strings.ToLower(row[0].String())
		for _, r := range tableRules {
			for _, kw := range r.keywords {
				if strings.Contains(key, kw) {
					fn(r, last.Number)
					break
				}
			}
		}
	}
}
