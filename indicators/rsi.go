package indicators

import "github.com/rustyeddy/fxtrainer/market"

const (
	// DefaultRSIPeriod is the classic 14 period RSI.
	DefaultRSIPeriod = 14

	// RSINeutral is emitted during warm-up and when there is not enough data.
	RSINeutral = 50.0

	// RSIMax is emitted when the lookback has no losses at all.
	RSIMax = 100.0
)

// RSI calculates the Relative Strength Index over simple (non-smoothed)
// averages of the trailing period close-to-close changes.
//
// With fewer than period+1 candles every entry is RSINeutral. Otherwise
// entries below period are RSINeutral and a lookback without losses yields
// RSIMax.
func RSI(candles []market.Candle, period int) Series {
	out := make(Series, len(candles))
	for i := range out {
		out[i] = RSINeutral
	}
	if period <= 0 || len(candles) < period+1 {
		return out
	}

	for i := period; i < len(candles); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := candles[j].Close - candles[j-1].Close
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)
		if avgLoss == 0 {
			out[i] = RSIMax
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
