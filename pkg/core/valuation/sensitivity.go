package valuation

import (
	"fmt"

	"dcf_lite/pkg/core/assumption"
)

// DefaultSteps are the absolute perturbations applied to each grid axis.
var DefaultSteps = []float64{-0.01, -0.005, 0, 0.005, 0.01}

// Sensitivity is a grid of implied share prices over discount rate (rows)
// and a growth driver (columns). The growth driver is the long-term growth
// rate under the perpetuity method and unit volume growth under the exit
// multiple method.
type Sensitivity struct {
	RowLabel      string      `json:"row_label"`
	ColumnLabel   string      `json:"column_label"`
	DiscountRates []float64   `json:"discount_rates"`
	GrowthRates   []float64   `json:"growth_rates"`
	Prices        [][]float64 `json:"prices"`
	Valid         [][]bool    `json:"valid"`
	BaseRow       int         `json:"base_row"`
	BaseCol       int         `json:"base_col"`
}

// Corner returns the cell label used in table headers, e.g. "WACC \ LT Growth".
func (s Sensitivity) Corner() string {
	return fmt.Sprintf("%s \\ %s", s.RowLabel, s.ColumnLabel)
}

// BuildSensitivity revalues a for every combination of steps on both axes.
// A cell whose perturbed inputs cannot be valued (for example a discount
// rate at or below -100%) is left at 0 and marked invalid.
func BuildSensitivity(a assumption.AssumptionSet, years int, steps []float64) (Sensitivity, error) {
	if err := a.Validate(); err != nil {
		return Sensitivity{}, err
	}
	if len(steps) == 0 {
		steps = DefaultSteps
	}

	growthMethod := a.TVMethod == assumption.TVGrowth
	baseGrowth := a.UnitGrowth
	s := Sensitivity{
		RowLabel:    "WACC",
		ColumnLabel: "Vol Growth",
		BaseRow:     -1,
		BaseCol:     -1,
	}
	if growthMethod {
		baseGrowth = a.TVInput
		s.ColumnLabel = "LT Growth"
	}

	for i, step := range steps {
		s.DiscountRates = append(s.DiscountRates, a.DiscountRate+step)
		s.GrowthRates = append(s.GrowthRates, baseGrowth+step)
		if step == 0 {
			s.BaseRow, s.BaseCol = i, i
		}
	}

	s.Prices = make([][]float64, len(steps))
	s.Valid = make([][]bool, len(steps))
	for i, rate := range s.DiscountRates {
		s.Prices[i] = make([]float64, len(steps))
		s.Valid[i] = make([]bool, len(steps))
		for j, g := range s.GrowthRates {
			p := a
			p.DiscountRate = rate
			if growthMethod {
				p.TVInput = g
			} else {
				p.UnitGrowth = g
			}
			price, err := ImpliedSharePrice(p, years)
			if err != nil {
				continue
			}
			s.Prices[i][j] = price
			s.Valid[i][j] = true
		}
	}
	return s, nil
}
