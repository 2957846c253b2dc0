package risk

// RR is the reward-to-risk ratio of a ticket measured in pips.
func RR(slPips, tpPips float64) float64 {
	if slPips <= 0 {
		return 0
	}
	return tpPips / slPips
}

// RiskAmount is the account loss if the stop is hit.
func RiskAmount(lot, slPips, profitPerPipPerLot float64) float64 {
	return lot * slPips * profitPerPipPerLot
}

// RiskPct is amount as a percentage of balance. With nothing left in the
// account any positive risk counts as 100%.
func RiskPct(amount, balance float64) float64 {
	if balance <= 0 {
		if amount > 0 {
			return 100
		}
		return 0
	}
	return amount / balance * 100
}

// MarginUsagePct is the share of the balance tied up as margin, in percent.
func MarginUsagePct(usedMargin, balance float64) float64 {
	if balance <= 0 {
		return 0
	}
	return usedMargin / balance * 100
}
