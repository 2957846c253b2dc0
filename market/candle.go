package market

import (
	"math"
	"time"
)

// Candle represents OHLC (Open, High, Low, Close) candlestick data.
//
// The last candle of a window is the forming candle: its close, high and low
// track the live price until a new candle supersedes it.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// NewFlatCandle returns a candle with all four prices equal to price.
func NewFlatCandle(t time.Time, price float64) Candle {
	return Candle{Time: t, Open: price, High: price, Low: price, Close: price}
}

// Apply moves the close to price and extends high/low to contain it.
func (c *Candle) Apply(price float64) {
	c.Close = price
	if price > c.High {
		c.High = price
	}
	if price < c.Low {
		c.Low = price
	}
}

// Range is High - Low.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// Valid reports whether the candle satisfies low <= min(open,close) and
// high >= max(open,close).
func (c Candle) Valid() bool {
	return c.Low <= math.Min(c.Open, c.Close) && c.High >= math.Max(c.Open, c.Close)
}

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
