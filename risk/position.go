package risk

import (
	"math"

	"github.com/rustyeddy/fxtrainer/market"
)

type Inputs struct {
	Balance            float64
	RiskPct            float64 // 2 means 2%
	StopPips           float64
	ProfitPerPipPerLot float64
}

type Result struct {
	Lot        float64
	RiskAmount float64
}

// Calculate sizes a position so that hitting the stop loses RiskPct of the
// balance. The lot is rounded to two decimals.
func Calculate(in Inputs) Result {
	riskAmt := in.Balance * in.RiskPct / 100
	if in.StopPips <= 0 || in.ProfitPerPipPerLot <= 0 {
		return Result{RiskAmount: riskAmt}
	}

	lot := riskAmt / (in.StopPips * in.ProfitPerPipPerLot)
	if math.IsNaN(lot) || lot < 0 {
		lot = 0
	}
	return Result{
		Lot:        market.Round2(lot),
		RiskAmount: riskAmt,
	}
}

// SafeLot is the lot size that risks 2% of balance on a 20 pip stop.
func SafeLot(balance float64) float64 {
	return Calculate(Inputs{
		Balance:            balance,
		RiskPct:            SafeRiskPct,
		StopPips:           SafeStopPips,
		ProfitPerPipPerLot: DefaultProfitPerPipPerLot,
	}).Lot
}
