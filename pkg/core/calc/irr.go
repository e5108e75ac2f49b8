package calc

import "math"

// Newton-Raphson settings for SolveIRR.
const (
	IRRInitialGuess  = 0.10
	IRRTolerance     = 1e-5
	IRRMaxIterations = 100
)

// IRRResult reports how the solve ended.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Reason     Reason  `json:"reason,omitempty"`
}

// Outcome converts the result into the tagged form shared with other helpers.
func (r IRRResult) Outcome() Outcome {
	return Outcome{Value: r.Rate, Reason: r.Reason}
}

// SolveIRR finds the rate r at which the discounted cash flows plus terminal
// value equal targetPV. It returns 0 when targetPV <= 0 or there are no cash
// flows. See SolveIRRDetail.
func SolveIRR(cashFlows []float64, terminalValue, targetPV float64, midYear bool) float64 {
	return SolveIRRDetail(cashFlows, terminalValue, targetPV, midYear).Rate
}

// SolveIRRDetail runs Newton-Raphson on
//
//	f(r) = -targetPV + Σ CF_t / (1+r)^p_t + TV / (1+r)^N
//
// where p_t follows DiscountPeriod and N is the number of cash flows. The
// terminal value is always discounted over the full N periods, even under
// the mid-year convention.
//
// The solve starts at 10% and stops when |f(r)| < 1e-5, after 100 iterations,
// or when f'(r) == 0. Series without a sign change have no root and the last
// rate is returned unconverged.
func SolveIRRDetail(cashFlows []float64, terminalValue, targetPV float64, midYear bool) IRRResult {
	if targetPV <= 0 {
		return IRRResult{Reason: ReasonNoIRRTarget}
	}
	if len(cashFlows) == 0 {
		return IRRResult{Reason: ReasonNoCashFlows}
	}

	n := float64(len(cashFlows))
	rate := IRRInitialGuess

	for i := 0; i < IRRMaxIterations; i++ {
		base := 1 + rate
		f := -targetPV
		df := 0.0
		for t, cf := range cashFlows {
			p := DiscountPeriod(t+1, midYear)
			f += cf / math.Pow(base, p)
			df -= p * cf / math.Pow(base, p+1)
		}
		f += terminalValue / math.Pow(base, n)
		df -= n * terminalValue / math.Pow(base, n+1)

		if math.Abs(f) < IRRTolerance {
			return IRRResult{Rate: rate, Iterations: i, Converged: true}
		}
		if df == 0 {
			return IRRResult{Rate: rate, Iterations: i, Reason: ReasonZeroDerivative}
		}

		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return IRRResult{Rate: rate, Iterations: i + 1, Reason: ReasonDiverged}
		}
		rate = next
	}

	return IRRResult{Rate: rate, Iterations: IRRMaxIterations, Reason: ReasonNotConverged}
}
