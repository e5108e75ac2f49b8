package valuation

import (
	"encoding/json"
	"strings"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/utils"
)

// FormValue is a single form field as the browser sends it: a JSON number,
// a string, a bool or null.
type FormValue struct {
	raw string
}

// V builds a FormValue from a literal, mostly for tests.
func V(s string) FormValue { return FormValue{raw: s} }

func (v *FormValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = FormValue{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = str
	}
	v.raw = strings.TrimSpace(s)
	return nil
}

func (v FormValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// Float returns the leading number of the field ("5%" reads as 5). Blank,
// non-numeric and zero values yield fallback, which is how the form treats an
// empty or cleared input.
func (v FormValue) Float(fallback float64) float64 {
	f, ok := utils.ParseFloatPrefix(v.raw)
	if !ok || f == 0 {
		return fallback
	}
	return f
}

// Percent reads a field entered on the 0-100 scale as a fraction.
func (v FormValue) Percent() float64 {
	return v.Float(0) / 100
}

// Bool accepts checkbox-style values.
func (v FormValue) Bool() bool {
	switch strings.ToLower(v.raw) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// FormRequest mirrors the calculator form. Growth rates, tax rate, discount
// rate and long-term growth are entered as percentages; the margin fields
// stay on the 0-100 scale the engine expects.
type FormRequest struct {
	Units             FormValue `json:"units"`
	Price             FormValue `json:"price"`
	UnitGrowth        FormValue `json:"unitGrowth"`
	PriceGrowth       FormValue `json:"priceGrowth"`
	COGSPct           FormValue `json:"cogsPct"`
	SGAPct            FormValue `json:"sgaPct"`
	DAPct             FormValue `json:"daPct"`
	TaxRate           FormValue `json:"taxRate"`
	CapexPct          FormValue `json:"capexPct"`
	NWCPct            FormValue `json:"nwcPct"`
	InterestExpense   FormValue `json:"interestExpense"`
	NetBorrowing      FormValue `json:"netBorrowing"`
	NetDebt           FormValue `json:"netDebt"`
	SharesOutstanding FormValue `json:"sharesOutstanding"`
	DiscountRate      FormValue `json:"discountRate"`
	MarketPrice       FormValue `json:"marketPrice"`
	TVMethod          string    `json:"tvMethod"`
	TVInput           FormValue `json:"tvInput"`
	MidYear           FormValue `json:"midYear"`
	ModelType         string    `json:"modelType"`
	Years             FormValue `json:"years"`
}

// Assumptions converts the form into engine units. Unknown method and model
// strings pass through so validation can reject them.
func (f FormRequest) Assumptions() assumption.AssumptionSet {
	a := assumption.AssumptionSet{
		Units:             f.Units.Float(0),
		Price:             f.Price.Float(0),
		UnitGrowth:        f.UnitGrowth.Percent(),
		PriceGrowth:       f.PriceGrowth.Percent(),
		COGSPct:           f.COGSPct.Float(0),
		SGAPct:            f.SGAPct.Float(0),
		DAPct:             f.DAPct.Float(0),
		TaxRate:           f.TaxRate.Percent(),
		CapexPct:          f.CapexPct.Float(0),
		NWCPct:            f.NWCPct.Float(0),
		InterestExpense:   f.InterestExpense.Float(0),
		NetBorrowing:      f.NetBorrowing.Float(0),
		NetDebt:           f.NetDebt.Float(0),
		SharesOutstanding: f.SharesOutstanding.Float(1),
		DiscountRate:      f.DiscountRate.Percent(),
		MarketPrice:       f.MarketPrice.Float(0),
		TVMethod:          assumption.TVMethod(strings.ToLower(strings.TrimSpace(f.TVMethod))),
		MidYear:           f.MidYear.Bool(),
		ModelType:         assumption.ModelType(strings.ToLower(strings.TrimSpace(f.ModelType))),
	}
	if a.TVMethod == "" {
		a.TVMethod = assumption.TVGrowth
	}
	if a.ModelType == "" {
		a.ModelType = assumption.Unlevered
	}
	if a.TVMethod == assumption.TVGrowth {
		a.TVInput = f.TVInput.Percent()
	} else {
		a.TVInput = f.TVInput.Float(0)
	}
	return a
}
