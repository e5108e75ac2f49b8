package assumption

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"dcf_lite/pkg/core/calc"
	"dcf_lite/pkg/core/ingest"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default assumptions should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AssumptionSet)
		want   error
	}{
		{"zero shares", func(a *AssumptionSet) { a.SharesOutstanding = 0 }, ErrNonPositiveShares},
		{"negative shares", func(a *AssumptionSet) { a.SharesOutstanding = -5 }, ErrNonPositiveShares},
		{"nan price", func(a *AssumptionSet) { a.Price = math.NaN() }, calc.ErrNonFinite},
		{"inf growth", func(a *AssumptionSet) { a.UnitGrowth = math.Inf(1) }, calc.ErrNonFinite},
		{"rate at -100%", func(a *AssumptionSet) { a.DiscountRate = -1 }, calc.ErrRateOutOfDomain},
		{"bad method", func(a *AssumptionSet) { a.TVMethod = "dividend" }, ErrUnknownTVMethod},
		{"empty model", func(a *AssumptionSet) { a.ModelType = "" }, ErrUnknownModelType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Default()
			tt.mutate(&a)
			err := a.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsValidationError(err) {
				t.Errorf("expected IsValidationError for %v", err)
			}
		})
	}
}

func TestValidate_DegenerateInputsPass(t *testing.T) {
	a := Default()
	a.DiscountRate = 0.02
	a.TVInput = 0.03 // r < g
	a.COGSPct = 100  // no margin
	a.InterestExpense = 0
	a.UnitGrowth = -0.2
	if err := a.Validate(); err != nil {
		t.Errorf("degenerate inputs should validate, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	a := Default()
	if a.DiscountRateLabel() != "Discount Rate (WACC) (%)" {
		t.Errorf("unexpected label %q", a.DiscountRateLabel())
	}
	a.ModelType = Levered
	a.TVMethod = TVMultiple
	if a.DiscountRateLabel() != "Cost of Equity (%)" {
		t.Errorf("unexpected label %q", a.DiscountRateLabel())
	}
	if a.TVInputLabel() != "Exit EBITDA Multiple (x)" {
		t.Errorf("unexpected label %q", a.TVInputLabel())
	}
}

func TestWithTable(t *testing.T) {
	base := Default()
	grid := ingest.ParseTable("Unit Volume\t2500\nPrice\t$12.50\nNet Debt\t800\nShares Outstanding\t40\nNotes\tn/a")

	got := base.WithTable(grid)

	if got.Units != 2500 || got.Price != 12.5 || got.NetDebt != 800 || got.SharesOutstanding != 40 {
		t.Errorf("unexpected prefill: %+v", got)
	}
	if base.Units != Default().Units {
		t.Error("WithTable must not mutate the receiver")
	}

	fields := PrefilledFields(grid)
	if len(fields) != 4 || fields["price"] != 12.5 {
		t.Errorf("unexpected prefilled fields: %v", fields)
	}
}

func TestWithTable_LastCellWins(t *testing.T) {
	grid := ingest.ParseTable("Units,100,120,150\nPrice,text")
	got := Default().WithTable(grid)
	if got.Units != 150 {
		t.Errorf("expected last cell 150, got %f", got.Units)
	}
	if got.Price != Default().Price {
		t.Errorf("non-numeric price should be ignored, got %f", got.Price)
	}
}

func TestDecode(t *testing.T) {
	a, err := Decode([]byte(`{"units": 100, "price": 10, "model_type": "levered",}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Units != 100 || a.Price != 10 || a.ModelType != Levered {
		t.Errorf("unexpected decode: %+v", a)
	}
	if a.SharesOutstanding != 1 || a.TVMethod != TVGrowth {
		t.Errorf("expected form defaults for absent fields, got %+v", a)
	}
}

func TestLoadFile_ExampleMatchesDefault(t *testing.T) {
	a, err := LoadFile(filepath.Join("..", "..", "..", "config", "assumptions.example.hjson"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != Default() {
		t.Errorf("expected example file to match defaults\n got: %+v\nwant: %+v", a, Default())
	}
}

func TestDecode_QuotelessValuesMidDocument(t *testing.T) {
	a, err := Decode([]byte("{\n  tv_method: multiple\n  tv_input: 8\n  model_type: levered\n  units: 100\n}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TVMethod != TVMultiple || a.TVInput != 8 || a.ModelType != Levered || a.Units != 100 {
		t.Errorf("unexpected decode: %+v", a)
	}
}

func TestWithTable_NumericPrefix(t *testing.T) {
	grid := ingest.ParseTable("Shares Outstanding\t100M\nUnits\t12abc\nPrice\t$1,000")
	fields := PrefilledFields(grid)
	if fields["shares_outstanding"] != 100 || fields["units"] != 12 {
		t.Errorf("expected leading numbers to prefill, got %v", fields)
	}
	// "$1,000" splits on the comma: "$1" reads as 1, "000" as 0
	if fields["price"] != 0 {
		t.Errorf("expected last price cell 0, got %v", fields["price"])
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.hjson")
	content := "units: 100\nprice: 10\nshares_outstanding: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrNonPositiveShares) {
		t.Errorf("expected ErrNonPositiveShares, got %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
