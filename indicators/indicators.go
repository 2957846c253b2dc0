// Package indicators provides technical analysis indicators over candle
// sequences.
//
// Series-producing functions return one value per input candle. Entries
// without enough history are undefined and hold NaN; use Defined to test them.
package indicators

import (
	"math"

	"github.com/rustyeddy/fxtrainer/market"
)

// Series is a sequence of indicator values aligned 1:1 with the input candles.
type Series []float64

// Defined reports whether v is a computed value rather than a warm-up gap.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// At returns the value at i and whether it is defined. Out of range indexes
// are undefined.
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	v := s[i]
	if !Defined(v) {
		return 0, false
	}
	return v, true
}

// Last returns the final value of the series and whether it is defined.
func (s Series) Last() (float64, bool) {
	return s.At(len(s) - 1)
}

// Closes extracts the close prices, oldest first.
func Closes(candles []market.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
