// Package projection builds the year-by-year financial bridge from revenue to
// unlevered and levered free cash flow.
package projection

import (
	"errors"
	"fmt"
	"math"

	"dcf_lite/pkg/core/assumption"
)

// ErrInvalidYears is returned when the forecast horizon is not positive.
var ErrInvalidYears = errors.New("projection years must be positive")

// Project runs the forecast for the given number of years.
//
// Volume and price compound from the baseline before each year's revenue is
// computed, so year 1 already carries one period of growth. ΔNWC is measured
// against the prior year's revenue (the un-grown baseline for year 1). Both
// UFCF and LFCF are produced every year; the model type is applied
// downstream.
func Project(a assumption.AssumptionSet, years int) ([]YearProjection, error) {
	if years <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidYears, years)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	out := make([]YearProjection, 0, years)
	units := a.Units
	price := a.Price
	prevRevenue := a.BaselineRevenue()

	for year := 1; year <= years; year++ {
		units *= 1 + a.UnitGrowth
		price *= 1 + a.PriceGrowth

		p := projectYear(a, year, units, price, prevRevenue)
		out = append(out, p)
		prevRevenue = p.Revenue
	}
	return out, nil
}

// projectYear computes a single year given the already-grown volume and price.
func projectYear(a assumption.AssumptionSet, year int, units, price, prevRevenue float64) YearProjection {
	revenue := units * price

	// 1. Margin cascade
	cogs := revenue * pct(a.COGSPct)
	grossProfit := revenue - cogs
	sga := revenue * pct(a.SGAPct)
	ebitda := grossProfit - sga
	da := revenue * pct(a.DAPct)
	ebit := ebitda - da

	// Unlevered taxes are not floored: an operating loss earns a credit.
	taxes := ebit * a.TaxRate
	nopat := ebit - taxes

	// 2. Reinvestment
	capex := revenue * pct(a.CapexPct)
	deltaNWC := (revenue - prevRevenue) * pct(a.NWCPct)

	ufcf := nopat + da - capex - deltaNWC

	// 3. Levered bridge, taxes floored at zero
	ebt := ebit - a.InterestExpense
	leveredTaxes := math.Max(0, ebt*a.TaxRate)
	netIncome := ebt - leveredTaxes
	lfcf := netIncome + da - capex - deltaNWC + a.NetBorrowing

	return YearProjection{
		Year:         year,
		Units:        units,
		Price:        price,
		Revenue:      revenue,
		COGS:         cogs,
		GrossProfit:  grossProfit,
		SGA:          sga,
		EBITDA:       ebitda,
		DA:           da,
		EBIT:         ebit,
		Taxes:        taxes,
		NOPAT:        nopat,
		Capex:        capex,
		DeltaNWC:     deltaNWC,
		UFCF:         ufcf,
		EBT:          ebt,
		LeveredTaxes: leveredTaxes,
		NetIncome:    netIncome,
		LFCF:         lfcf,
	}
}

func pct(v float64) float64 { return v / 100 }

// ProjectFCF grows a single free cash flow figure at a constant rate.
func ProjectFCF(currentFCF, growthRate float64, years int) []FCFProjection {
	out := make([]FCFProjection, 0, max(years, 0))
	fcf := currentFCF
	for year := 1; year <= years; year++ {
		fcf *= 1 + growthRate
		out = append(out, FCFProjection{Year: year, FCF: fcf})
	}
	return out
}

// CashFlows picks UFCF or LFCF from each year according to the model type.
func CashFlows(projs []YearProjection, model assumption.ModelType) []float64 {
	out := make([]float64, len(projs))
	for i, p := range projs {
		out[i] = p.CashFlow(model)
	}
	return out
}

// CashFlow returns the measure discounted under the given model type.
func (p YearProjection) CashFlow(model assumption.ModelType) float64 {
	if model == assumption.Levered {
		return p.LFCF
	}
	return p.UFCF
}
