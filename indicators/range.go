package indicators

import (
	"math"

	"github.com/rustyeddy/fxtrainer/market"
)

// AverageRange returns the mean High-Low range of the last n candles.
// ok is false when there are fewer than n candles.
func AverageRange(candles []market.Candle, n int) (avg float64, ok bool) {
	if n <= 0 || len(candles) < n {
		return 0, false
	}
	sum := 0.0
	for _, c := range candles[len(candles)-n:] {
		sum += c.Range()
	}
	return sum / float64(n), true
}

// trueRange calculates the True Range for a candle given the previous candle.
func trueRange(current, previous market.Candle) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// AverageTrueRange is the simple mean of the last n true ranges. It needs
// n+1 candles.
func AverageTrueRange(candles []market.Candle, n int) (float64, bool) {
	if n <= 0 || len(candles) < n+1 {
		return 0, false
	}
	sum := 0.0
	for i := len(candles) - n; i < len(candles); i++ {
		sum += trueRange(candles[i], candles[i-1])
	}
	return sum / float64(n), true
}
