package risk

const (
	DefaultProfitPerPipPerLot = 100

	SafeRiskPct  = 2.0
	SafeStopPips = 20.0
)

// Policy holds the thresholds a ticket is graded against.
type Policy struct {
	MinStopPips float64 // below: STOP_TOO_TIGHT
	MinRR       float64 // below: RR_TOO_LOW
	MaxRiskPct  float64 // above: RISK_TOO_HIGH

	// Good tickets need at least GoodRR and at most GoodRiskPct.
	GoodRR      float64
	GoodRiskPct float64

	ProfitPerPipPerLot float64
}

func DefaultPolicy() Policy {
	return Policy{
		MinStopPips:        10,
		MinRR:              1,
		MaxRiskPct:         5,
		GoodRR:             2,
		GoodRiskPct:        2,
		ProfitPerPipPerLot: DefaultProfitPerPipPerLot,
	}
}
