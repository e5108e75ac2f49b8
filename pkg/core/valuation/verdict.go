package valuation

// Tier ranks a verdict from most to least attractive.
type Tier int

const (
	TierStrongBuy Tier = iota + 1
	TierBuy
	TierHold
	TierSell
)

// Verdict is the qualitative recommendation shown with the valuation.
type Verdict struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	VerdictStrongBuy = Verdict{Tier: TierStrongBuy, Label: "STRONG BUY", Color: "#10b981"}
	VerdictBuy       = Verdict{Tier: TierBuy, Label: "BUY", Color: "#38bdf8"}
	VerdictHold      = Verdict{Tier: TierHold, Label: "HOLD", Color: "#f59e0b"}
	VerdictSell      = Verdict{Tier: TierSell, Label: "SELL", Color: "#ef4444"}
)

// GetVerdict classifies upside and IRR against the hurdle rate. First match
// wins:
//
//	upside > 30% and IRR > hurdle + 5%  -> STRONG BUY
//	upside > 10%                        -> BUY
//	upside > -10%                       -> HOLD
//	otherwise                           -> SELL
func GetVerdict(upside, irr, hurdle float64) Verdict {
	switch {
	case upside > 0.30 && irr > hurdle+0.05:
		return VerdictStrongBuy
	case upside > 0.10:
		return VerdictBuy
	case upside > -0.10:
		return VerdictHold
	default:
		return VerdictSell
	}
}
