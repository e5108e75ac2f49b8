package calc

import "testing"

func TestCredit_ZeroInterest(t *testing.T) {
	m := Credit(50, 0, 100, 40)

	if m.InterestCoverage != 99 {
		t.Errorf("expected coverage sentinel 99, got %f", m.InterestCoverage)
	}
	if m.DebtToEBITDA != 2.5 {
		t.Errorf("expected leverage 2.5, got %f", m.DebtToEBITDA)
	}
	if m.CoverageReason != ReasonZeroInterest {
		t.Errorf("expected zero-interest reason, got %q", m.CoverageReason)
	}
}

func TestCredit_NonPositiveEBITDA(t *testing.T) {
	for _, ebitda := range []float64{0, -10} {
		m := Credit(-20, 10, 100, ebitda)
		if m.DebtToEBITDA != 0 {
			t.Errorf("ebitda %v: expected leverage 0, got %f", ebitda, m.DebtToEBITDA)
		}
		if m.LeverageReason != ReasonNonPositiveEBITDA {
			t.Errorf("ebitda %v: expected non-positive-ebitda, got %q", ebitda, m.LeverageReason)
		}
		if m.InterestCoverage != -2 {
			t.Errorf("expected coverage -2, got %f", m.InterestCoverage)
		}
	}
}

func TestCredit_Status(t *testing.T) {
	tests := []struct {
		name string
		m    CreditMetrics
		want CreditStatus
	}{
		{"strong", Credit(100, 20, 150, 120), CreditInvestmentGrade},
		{"thin coverage", Credit(30, 10, 100, 120), CreditCovenantWarning},
		{"high leverage", Credit(100, 10, 500, 100), CreditCovenantWarning},
		{"no interest", Credit(100, 0, 0, 100), CreditInvestmentGrade},
	}
	for _, tt := range tests {
		if got := tt.m.Status(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestCredit_Reasons(t *testing.T) {
	if got := Credit(50, 0, 100, 0).Reasons(); len(got) != 2 {
		t.Errorf("expected 2 reasons, got %v", got)
	}
	if got := Credit(50, 10, 100, 40).Reasons(); len(got) != 0 {
		t.Errorf("expected no reasons, got %v", got)
	}
}
