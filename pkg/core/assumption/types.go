// Package assumption defines the operating and capital-structure inputs of a
// DCF run.
package assumption

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"dcf_lite/pkg/core/calc"
)

// TVMethod selects how the terminal value is computed.
type TVMethod string

const (
	TVGrowth   TVMethod = "growth"   // perpetuity growth on the final cash flow
	TVMultiple TVMethod = "multiple" // exit multiple on the final EBITDA
)

// ModelType selects which cash flow is discounted.
type ModelType string

const (
	Unlevered ModelType = "unlevered" // UFCF at WACC, yields enterprise value
	Levered   ModelType = "levered"   // LFCF at cost of equity, yields equity value
)

var (
	ErrNonPositiveShares = errors.New("shares outstanding must be positive")
	ErrUnknownTVMethod   = errors.New("unknown terminal value method")
	ErrUnknownModelType  = errors.New("unknown model type")
)

// AssumptionSet is the full parameter bundle for one recompute.
//
// Growth, tax and discount rates are fractional (0.05 = 5%). The
// percentage-of-revenue drivers (COGS, SG&A, D&A, CapEx, NWC) are on a 0-100
// scale. NWCPct applies to the change in revenue, not its level.
type AssumptionSet struct {
	Units       float64 `json:"units"`
	Price       float64 `json:"price"`
	UnitGrowth  float64 `json:"unit_growth"`
	PriceGrowth float64 `json:"price_growth"`

	COGSPct  float64 `json:"cogs_pct"`
	SGAPct   float64 `json:"sga_pct"`
	DAPct    float64 `json:"da_pct"`
	TaxRate  float64 `json:"tax_rate"`
	CapexPct float64 `json:"capex_pct"`
	NWCPct   float64 `json:"nwc_pct"`

	InterestExpense   float64 `json:"interest_expense"`
	NetBorrowing      float64 `json:"net_borrowing"`
	NetDebt           float64 `json:"net_debt"`
	SharesOutstanding float64 `json:"shares_outstanding" validate:"gt=0"`

	DiscountRate float64   `json:"discount_rate" validate:"gt=-1"`
	MarketPrice  float64   `json:"market_price"`
	TVMethod     TVMethod  `json:"tv_method" validate:"oneof=growth multiple"`
	TVInput      float64   `json:"tv_input"` // long-term growth (fractional) or exit multiple (x)
	MidYear      bool      `json:"mid_year"`
	ModelType    ModelType `json:"model_type" validate:"oneof=unlevered levered"`
}

// Default returns a plausible starting case for the form.
func Default() AssumptionSet {
	return AssumptionSet{
		Units:             1000,
		Price:             50,
		UnitGrowth:        0.05,
		PriceGrowth:       0.02,
		COGSPct:           40,
		SGAPct:            20,
		DAPct:             5,
		TaxRate:           0.25,
		CapexPct:          6,
		NWCPct:            10,
		InterestExpense:   500,
		NetBorrowing:      0,
		NetDebt:           5000,
		SharesOutstanding: 100,
		DiscountRate:      0.09,
		MarketPrice:       150,
		TVMethod:          TVGrowth,
		TVInput:           0.025,
		MidYear:           false,
		ModelType:         Unlevered,
	}
}

var validate = validator.New()

// Validate rejects inputs the engine cannot compute with: non-finite
// numbers, non-positive shares, a discount rate at or below -100% and unknown
// enum values. Degenerate but computable inputs (zero EBITDA, r <= g) pass.
func (a AssumptionSet) Validate() error {
	if err := checkFinite(a); err != nil {
		return err
	}
	err := validate.Struct(a)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.StructField() {
	case "SharesOutstanding":
		return fmt.Errorf("%w: got %v", ErrNonPositiveShares, fe.Value())
	case "DiscountRate":
		return fmt.Errorf("%w: got %v", calc.ErrRateOutOfDomain, fe.Value())
	case "TVMethod":
		return fmt.Errorf("%w: %q", ErrUnknownTVMethod, fe.Value())
	case "ModelType":
		return fmt.Errorf("%w: %q", ErrUnknownModelType, fe.Value())
	}
	return fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value())
}

func checkFinite(a AssumptionSet) error {
	v := reflect.ValueOf(a)
	typ := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Float64 {
			continue
		}
		x := f.Float()
		if math.IsNaN(x) || math.IsInf(x, 0) {
			name := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
			return fmt.Errorf("%w: %s", calc.ErrNonFinite, name)
		}
	}
	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, calc.ErrNonFinite) ||
		errors.Is(err, calc.ErrRateOutOfDomain) ||
		errors.Is(err, ErrNonPositiveShares) ||
		errors.Is(err, ErrUnknownTVMethod) ||
		errors.Is(err, ErrUnknownModelType)
}

// BaselineRevenue is volume × price before any growth is applied.
func (a AssumptionSet) BaselineRevenue() float64 {
	return a.Units * a.Price
}

// Levered reports whether the levered (equity) convention is selected.
func (a AssumptionSet) Levered() bool {
	return a.ModelType == Levered
}

// DiscountRateLabel is the label the form shows for the discount rate field.
func (a AssumptionSet) DiscountRateLabel() string {
	if a.Levered() {
		return "Cost of Equity (%)"
	}
	return "Discount Rate (WACC) (%)"
}

// TVInputLabel is the label the form shows for the terminal value input.
func (a AssumptionSet) TVInputLabel() string {
	if a.TVMethod == TVMultiple {
		return "Exit EBITDA Multiple (x)"
	}
	return "LT Growth (%)"
}
