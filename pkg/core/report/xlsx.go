// Package report renders a completed analysis as an XLSX workbook or a
// Markdown/HTML summary.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/projection"
	"dcf_lite/pkg/core/valuation"
)

const (
	SheetSummary     = "Executive Summary"
	SheetInputs      = "Balance Sheet & Inputs"
	SheetSensitivity = "Sensitivity"

	headerFill = "E2E8F0"
	moneyFmt   = "#,##0"
	priceFmt   = "$#,##0.00"
)

// Options configures workbook metadata.
type Options struct {
	Creator    string
	FilePrefix string
}

// ModelSheetName is the projection sheet title for the given horizon.
func ModelSheetName(years int) string {
	return fmt.Sprintf("%d-Year Projection Model", years)
}

// FileName builds the download name, e.g. DCF_Advanced_Report_2024-05-01.xlsx.
func FileName(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = "DCF_Report"
	}
	return fmt.Sprintf("%s_%s.xlsx", prefix, at.Format("2006-01-02"))
}

type styles struct {
	title, header, money, price int
}

// Workbook builds the four-sheet report. The caller owns the returned file
// and must Close it.
func Workbook(an *valuation.Analysis, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: opts.Creator,
		Title:   "DCF Valuation Report",
		Subject: an.RunID,
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("doc props: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	model := ModelSheetName(an.Years)
	for _, name := range []string{SheetInputs, model, SheetSensitivity} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	steps := []func() error{
		func() error { return writeSummary(f, an, opts, st) },
		func() error { return writeInputs(f, an.Assumptions, st) },
		func() error { return writeModel(f, model, an.Valuation.Projections, st) },
		func() error { return writeSensitivity(f, an.Sensitivity, st) },
		func() error { return addRevenueChart(f, model, len(an.Valuation.Projections)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteXLSX builds the workbook and streams it to w.
func WriteXLSX(w io.Writer, an *valuation.Analysis, opts Options) error {
	f, err := Workbook(an, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, fmt.Errorf("title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	}); err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	money := moneyFmt
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &money}); err != nil {
		return s, fmt.Errorf("money style: %w", err)
	}
	price := priceFmt
	if s.price, err = f.NewStyle(&excelize.Style{CustomNumFmt: &price}); err != nil {
		return s, fmt.Errorf("price style: %w", err)
	}
	return s, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	return f.SetSheetRow(sheet, cell(1, row), &values)
}

type colWidth struct {
	from, to string
	width    float64
}

func setWidths(f *excelize.File, sheet string, widths ...colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("column width %s:%s: %w", w.from, w.to, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, an *valuation.Analysis, opts Options, st styles) error {
	sh := SheetSummary
	title := "DCF Valuation Report"
	if opts.Creator != "" {
		title = opts.Creator + " - Financial Report"
	}
	if err := writeRow(f, sh, 1, title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "A1", st.title); err != nil {
		return err
	}

	if err := writeRow(f, sh, 3, "Metric", "Value", "Context"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A3", "C3", st.header); err != nil {
		return err
	}

	inv := an.Investment
	rows := [][]interface{}{
		{"Implied Share Price", fmt.Sprintf("$%.2f", an.Valuation.SharePrice), "Calculated Intrinsic Value"},
		{"Current Market Price", fmt.Sprintf("$%.2f", an.Assumptions.MarketPrice), "Current Trading Quote"},
		{"IRR (Internal Rate of Return)", fmt.Sprintf("%.1f%%", inv.IRR*100), "Annualized Projected Return"},
		{"Upside / Downside", fmt.Sprintf("%.1f%%", inv.Upside*100), "Value Relative to Market Price"},
		{"Margin of Safety", fmt.Sprintf("%.1f%%", inv.MarginOfSafety), "Buffer Below Intrinsic Value"},
		{"Model Verdict", inv.Verdict.Label, "Automated Assessment"},
		{"Enterprise Value", fmt.Sprintf("%.0f", an.Valuation.EnterpriseValue), "Sum of PV + PV of Terminal Value"},
		{"Credit Profile", string(an.CreditStatus), fmt.Sprintf("Coverage %.1fx, Debt/EBITDA %.1fx", an.Credit.InterestCoverage, an.Credit.DebtToEBITDA)},
	}
	for i, r := range rows {
		if err := writeRow(f, sh, 4+i, r...); err != nil {
			return err
		}
	}
	return setWidths(f, sh, colWidth{"A", "A", 30}, colWidth{"B", "B", 20}, colWidth{"C", "C", 40})
}

func pctLabel(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func writeInputs(f *excelize.File, a assumption.AssumptionSet, st styles) error {
	sh := SheetInputs
	if err := writeRow(f, sh, 1, "MODEL INPUT SNAPSHOT (BASELINE)"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "A1", st.header); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Baseline Units", a.Units},
		{"Price per Unit", a.Price},
		{"Unit Growth Rate", pctLabel(a.UnitGrowth * 100)},
		{"Price Growth Rate", pctLabel(a.PriceGrowth * 100)},
		{"COGS % of Revenue", pctLabel(a.COGSPct)},
		{"SG&A % of Revenue", pctLabel(a.SGAPct)},
		{"D&A % of Revenue", pctLabel(a.DAPct)},
		{"Tax Rate", pctLabel(a.TaxRate * 100)},
		{"CapEx % of Revenue", pctLabel(a.CapexPct)},
		{"Δ NWC % of Revenue Δ", pctLabel(a.NWCPct)},
		{},
		{"Current Net Debt ($M)", a.NetDebt},
		{"Shares Outstanding (M)", a.SharesOutstanding},
		{"Annual Interest Expense ($M)", a.InterestExpense},
		{"Expected Net Borrowing ($M)", a.NetBorrowing},
		{},
		{a.DiscountRateLabel(), pctLabel(a.DiscountRate * 100)},
		{a.TVInputLabel(), tvInputValue(a)},
		{"Model Type", string(a.ModelType)},
		{"Mid-Year Convention", a.MidYear},
	}
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		if err := writeRow(f, sh, 3+i, r...); err != nil {
			return err
		}
	}
	return setWidths(f, sh, colWidth{"A", "A", 30}, colWidth{"B", "B", 25})
}

func tvInputValue(a assumption.AssumptionSet) interface{} {
	if a.TVMethod == assumption.TVGrowth {
		return pctLabel(a.TVInput * 100)
	}
	return fmt.Sprintf("%.1fx", a.TVInput)
}

func writeModel(f *excelize.File, sh string, projs []projection.YearProjection, st styles) error {
	header := []interface{}{"Line Item ($M)"}
	for _, p := range projs {
		header = append(header, fmt.Sprintf("Year %d", p.Year))
	}
	if err := writeRow(f, sh, 1, header...); err != nil {
		return err
	}
	last := cell(len(header), 1)
	if err := f.SetCellStyle(sh, "A1", last, st.header); err != nil {
		return err
	}

	for i, line := range projection.LineItems(projs, projection.ModelLines) {
		row := []interface{}{line.Label}
		for _, v := range line.Values {
			row = append(row, v)
		}
		if err := writeRow(f, sh, 2+i, row...); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, cell(2, 2+i), cell(len(row), 2+i), st.money); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return setWidths(f, sh, colWidth{"A", "A", 25}, colWidth{"B", lastCol, 12})
}

func writeSensitivity(f *excelize.File, s valuation.Sensitivity, st styles) error {
	sh := SheetSensitivity
	header := []interface{}{s.Corner()}
	for _, g := range s.GrowthRates {
		header = append(header, pctLabel(g*100))
	}
	if err := writeRow(f, sh, 1, header...); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", cell(len(header), 1), st.header); err != nil {
		return err
	}

	for i, rate := range s.DiscountRates {
		row := []interface{}{pctLabel(rate * 100)}
		for j, price := range s.Prices[i] {
			if !s.Valid[i][j] {
				row = append(row, "n/a")
				continue
			}
			row = append(row, price)
		}
		if err := writeRow(f, sh, 2+i, row...); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, cell(1, 2+i), cell(1, 2+i), st.header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, cell(2, 2+i), cell(len(row), 2+i), st.price); err != nil {
			return err
		}
	}

	if s.BaseRow >= 0 && s.BaseCol >= 0 {
		base := cell(2+s.BaseCol, 2+s.BaseRow)
		if err := f.SetCellStyle(sh, base, base, st.header); err != nil {
			return err
		}
	}
	return f.SetColWidth(sh, "A", "A", 22)
}

// addRevenueChart plots the revenue row of the model sheet on the summary.
func addRevenueChart(f *excelize.File, model string, years int) error {
	if years == 0 {
		return nil
	}
	lastCol, _ := excelize.ColumnNumberToName(years + 1)
	ref := func(row int) string {
		return fmt.Sprintf("'%s'!$B$%d:$%s$%d", model, row, lastCol, row)
	}
	return f.AddChart(SheetSummary, "A14", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$A$2", model),
			Categories: ref(1),
			Values:     ref(2),
		}},
		Title:  []excelize.RichTextRun{{Text: "Projected Revenue"}},
		Legend: excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{
			Width:  550,
			Height: 350,
		},
	})
}
