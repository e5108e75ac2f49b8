// Package validate checks a projected forecast for internal consistency and
// summarises its growth profile.
package validate

import (
	"fmt"
	"math"

	"dcf_lite/pkg/core/projection"
)

// =============================================================================
// YEAR-OVER-YEAR (YoY) CALCULATIONS
// =============================================================================

// YoYResult holds the change of one line item between consecutive years.
type YoYResult struct {
	Label        string  `json:"label"`
	Year         int     `json:"year"`
	CurrentValue float64 `json:"current_value"`
	PriorValue   float64 `json:"prior_value"`
	ChangeAbs    float64 `json:"change_abs"`
	ChangePct    float64 `json:"change_pct"` // percent; 0 when the prior value is 0
}

// CalculateYoY returns (current - prior) / |prior| * 100. A zero prior gives
// 0 so the result always encodes as JSON.
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / math.Abs(prior) * 100
}

// YoYSeries computes the year-over-year change of the line named by key.
func YoYSeries(projs []projection.YearProjection, label, key string) []YoYResult {
	var out []YoYResult
	for i := 1; i < len(projs); i++ {
		cur, prior := projs[i].Value(key), projs[i-1].Value(key)
		out = append(out, YoYResult{
			Label:        label,
			Year:         projs[i].Year,
			CurrentValue: cur,
			PriorValue:   prior,
			ChangeAbs:    cur - prior,
			ChangePct:    CalculateYoY(cur, prior),
		})
	}
	return out
}

// =============================================================================
// CAGR (Compound Annual Growth Rate)
// =============================================================================

// CAGRResult holds the compound growth of one line item over the forecast.
type CAGRResult struct {
	Label      string  `json:"label"`
	StartValue float64 `json:"start_value"`
	EndValue   float64 `json:"end_value"`
	Years      int     `json:"years"`
	CAGR       float64 `json:"cagr"` // As percentage
}

// CalculateCAGR calculates compound annual growth rate.
// CAGR = ((EndValue / StartValue) ^ (1/years)) - 1
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || endValue < 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// CAGRFrom measures growth from start (typically the baseline before year 1)
// to the final projected year.
func CAGRFrom(projs []projection.YearProjection, label, key string, start float64) (*CAGRResult, error) {
	if len(projs) == 0 {
		return nil, fmt.Errorf("no projections for %s", label)
	}
	last := projs[len(projs)-1]
	return &CAGRResult{
		Label:      label,
		StartValue: start,
		EndValue:   last.Value(key),
		Years:      last.Year,
		CAGR:       CalculateCAGR(start, last.Value(key), last.Year),
	}, nil
}

// =============================================================================
// OUTLIER DETECTION
// =============================================================================

// OutlierCheck flags a suspicious value in the forecast.
type OutlierCheck struct {
	Item       string  `json:"item"`
	Year       int     `json:"year"`
	Value      float64 `json:"value"`
	PriorValue float64 `json:"prior_value"`
	ChangePct  float64 `json:"change_pct"`
	IsOutlier  bool    `json:"is_outlier"`
	Reason     string  `json:"reason,omitempty"`
	Threshold  float64 `json:"threshold"`
}

// CheckForOutlier identifies if a value change is suspicious.
func CheckForOutlier(item string, year int, current, prior, thresholdPct float64) *OutlierCheck {
	changePct := CalculateYoY(current, prior)

	check := &OutlierCheck{
		Item:       item,
		Year:       year,
		Value:      current,
		PriorValue: prior,
		ChangePct:  changePct,
		Threshold:  thresholdPct,
	}

	if current < 0 && prior >= 0 {
		check.IsOutlier = true
		check.Reason = "Turned negative"
		return check
	}

	if math.Abs(changePct) > thresholdPct {
		check.IsOutlier = true
		check.Reason = fmt.Sprintf("Change of %.1f%% exceeds threshold of %.1f%%", changePct, thresholdPct)
		return check
	}

	return check
}

// =============================================================================
// GROWTH PROFILE
// =============================================================================

// DefaultOutlierThreshold is the YoY swing (percent) that gets flagged.
const DefaultOutlierThreshold = 50.0

// GrowthProfile summarises how the key lines evolve across the forecast.
type GrowthProfile struct {
	RevenueCAGR *CAGRResult    `json:"revenue_cagr"`
	Revenue     []YoYResult    `json:"revenue_yoy"`
	EBITDA      []YoYResult    `json:"ebitda_yoy"`
	Outliers    []OutlierCheck `json:"outliers,omitempty"`
}

// Profile computes revenue CAGR from baseline, YoY series for revenue and
// EBITDA, and flags cash flow lines that swing more than thresholdPct or turn
// negative.
func Profile(projs []projection.YearProjection, baselineRevenue, thresholdPct float64) (*GrowthProfile, error) {
	cagr, err := CAGRFrom(projs, "Revenue", "revenue", baselineRevenue)
	if err != nil {
		return nil, err
	}
	p := &GrowthProfile{
		RevenueCAGR: cagr,
		Revenue:     YoYSeries(projs, "Revenue", "revenue"),
		EBITDA:      YoYSeries(projs, "EBITDA", "ebitda"),
	}
	for _, line := range []projection.LineDef{
		{Label: "EBITDA", Key: "ebitda"},
		{Label: "UFCF", Key: "ufcf"},
		{Label: "LFCF", Key: "lfcf"},
	} {
		for i := 1; i < len(projs); i++ {
			c := CheckForOutlier(line.Label, projs[i].Year, projs[i].Value(line.Key), projs[i-1].Value(line.Key), thresholdPct)
			if c.IsOutlier {
				p.Outliers = append(p.Outliers, *c)
			}
		}
	}
	return p, nil
}
