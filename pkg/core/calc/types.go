// Package calc provides the deterministic valuation math behind the DCF
// calculator. This file defines the error values and the tagged outcome used
// to report degenerate inputs.
package calc

import "errors"

// =============================================================================
// ERRORS
// True input errors. Degenerate-but-valid inputs never produce an error; they
// yield a sentinel value and a Reason instead.
// =============================================================================

var (
	// ErrRateOutOfDomain is returned when a discount rate is <= -100%.
	ErrRateOutOfDomain = errors.New("discount rate must be greater than -1")
	// ErrNonFinite is returned when an input is NaN or infinite.
	ErrNonFinite = errors.New("input is not a finite number")
)

// =============================================================================
// DEGENERACY
// =============================================================================

// Reason names the degenerate condition that forced a sentinel value.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonUnstablePerpetuity Reason = "unstable-perpetuity" // discount rate <= long-term growth
	ReasonZeroCapital        Reason = "zero-capital"        // equity + debt == 0
	ReasonZeroInterest       Reason = "zero-interest"       // interest expense == 0
	ReasonNonPositiveEBITDA  Reason = "non-positive-ebitda" // EBITDA <= 0
	ReasonNoIRRTarget        Reason = "no-irr-target"       // target present value <= 0
	ReasonNoCashFlows        Reason = "no-cash-flows"       // empty cash-flow series
	ReasonZeroDerivative     Reason = "zero-derivative"     // Newton step undefined
	ReasonNotConverged       Reason = "not-converged"       // iteration cap reached
	ReasonDiverged           Reason = "diverged"            // Newton step left the rate domain
)

// Outcome pairs a computed value with the reason it is a sentinel, if any.
type Outcome struct {
	Value  float64 `json:"value"`
	Reason Reason  `json:"reason,omitempty"`
}

// Degenerate reports whether Value is a sentinel.
func (o Outcome) Degenerate() bool {
	return o.Reason != ReasonNone
}

func computed(v float64) Outcome { return Outcome{Value: v} }

func sentinel(v float64, r Reason) Outcome { return Outcome{Value: v, Reason: r} }
