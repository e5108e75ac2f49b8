package projection

// YearProjection is one forecast year of the income statement to free cash
// flow bridge. PV is left at zero by the engine and filled in by valuation.
type YearProjection struct {
	Year int `json:"year"`

	Units float64 `json:"units"`
	Price float64 `json:"price"`

	Revenue     float64 `json:"revenue"`
	COGS        float64 `json:"cogs"`
	GrossProfit float64 `json:"gross_profit"`
	SGA         float64 `json:"sga"`
	EBITDA      float64 `json:"ebitda"`
	DA          float64 `json:"da"`
	EBIT        float64 `json:"ebit"`
	Taxes       float64 `json:"taxes"`
	NOPAT       float64 `json:"nopat"`

	Capex    float64 `json:"capex"`
	DeltaNWC float64 `json:"delta_nwc"`
	UFCF     float64 `json:"ufcf"`

	// Levered bridge
	EBT          float64 `json:"ebt"`
	LeveredTaxes float64 `json:"levered_taxes"`
	NetIncome    float64 `json:"net_income"`
	LFCF         float64 `json:"lfcf"`

	PV float64 `json:"pv"`
}

// FCFProjection is one year of the single-line FCF growth projection.
type FCFProjection struct {
	Year int     `json:"year"`
	FCF  float64 `json:"fcf"`
}

// LineItem is a labelled row of per-year values for tables and exports.
type LineItem struct {
	Label  string    `json:"label"`
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}
