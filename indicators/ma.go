package indicators

import (
	"math"

	"github.com/rustyeddy/fxtrainer/market"
)

// SMA calculates the Simple Moving Average of closes for the given period.
//
// The first period-1 entries are undefined. Every defined entry is the mean
// of the trailing period closes ending at that index, inclusive.
func SMA(candles []market.Candle, period int) Series {
	out := make(Series, len(candles))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(candles); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += candles[j].Close
		}
		out[i] = sum / float64(period)
	}
	return out
}
