package valuation

import (
	"time"

	"github.com/google/uuid"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/calc"
	"dcf_lite/pkg/core/projection"
	"dcf_lite/pkg/core/validate"
)

// Options controls a full analysis run.
type Options struct {
	Years            int
	SensitivitySteps []float64
}

// Analysis aggregates every output of one recompute.
type Analysis struct {
	RunID       string                   `json:"run_id"`
	CreatedAt   time.Time                `json:"created_at"`
	Assumptions assumption.AssumptionSet `json:"assumptions"`
	Years       int                      `json:"years"`

	Valuation    Result                `json:"valuation"`
	Credit       calc.CreditMetrics    `json:"credit"`
	CreditStatus calc.CreditStatus     `json:"credit_status"`
	Investment   Investment            `json:"investment"`
	Sensitivity  Sensitivity           `json:"sensitivity"`
	Lines        []projection.LineItem `json:"lines"`

	Growth  *validate.GrowthProfile `json:"growth"`
	Linkage *validate.LinkageReport `json:"linkage"`

	// Degeneracies lists every sentinel hit during the run.
	Degeneracies []calc.Reason `json:"degeneracies,omitempty"`
}

// Analyze projects, values and scores a in one pass.
func Analyze(a assumption.AssumptionSet, opts Options) (*Analysis, error) {
	if opts.Years == 0 {
		opts.Years = 5
	}

	// 1. Projection
	projs, err := projection.Project(a, opts.Years)
	if err != nil {
		return nil, err
	}

	// 2. DCF roll-up
	res, err := Value(a, projs)
	if err != nil {
		return nil, err
	}

	// 3. Credit on the final year
	last := res.Projections[len(res.Projections)-1]
	credit := calc.Credit(last.EBIT, a.InterestExpense, a.NetDebt, last.EBITDA)

	// 4. Investment metrics
	inv := EvaluateInvestment(a, res)

	// 5. Sensitivity
	sens, err := BuildSensitivity(a, opts.Years, opts.SensitivitySteps)
	if err != nil {
		return nil, err
	}

	// 6. Forecast checks
	growth, err := validate.Profile(res.Projections, a.BaselineRevenue(), validate.DefaultOutlierThreshold)
	if err != nil {
		return nil, err
	}

	out := &Analysis{
		RunID:        uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
		Assumptions:  a,
		Years:        opts.Years,
		Valuation:    res,
		Credit:       credit,
		CreditStatus: credit.Status(),
		Investment:   inv,
		Sensitivity:  sens,
		Lines:        projection.LineItems(res.Projections, projection.SummaryLines),
		Growth:       growth,
		Linkage:      validate.ValidateLinkages(a, res.Projections, validate.DefaultTolerance),
	}

	if res.TerminalReason != calc.ReasonNone {
		out.Degeneracies = append(out.Degeneracies, res.TerminalReason)
	}
	out.Degeneracies = append(out.Degeneracies, credit.Reasons()...)
	if inv.IRRDetail.Reason != calc.ReasonNone {
		out.Degeneracies = append(out.Degeneracies, inv.IRRDetail.Reason)
	}
	return out, nil
}
