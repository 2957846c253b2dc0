// Package pricing synthesizes the trainer's price series: a bounded random
// walk that drives a rolling window of candles.
package pricing

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxtrainer/market"
)

// HistoryLimit is how many tick prices are kept for the price change figure.
const HistoryLimit = 100

// WalkParams controls the random walk.
type WalkParams struct {
	InitialPrice     float64 `json:"initial_price" yaml:"initial_price"`
	Low              float64 `json:"price_low" yaml:"price_low"`
	High             float64 `json:"price_high" yaml:"price_high"`
	Volatility       float64 `json:"volatility" yaml:"volatility"`
	TrendFactor      float64 `json:"trend_factor" yaml:"trend_factor"`
	SpikeProbability float64 `json:"spike_probability" yaml:"spike_probability"`
	SpikeMagnitude   float64 `json:"spike_magnitude" yaml:"spike_magnitude"`

	// TicksPerCandle is the number of walk steps used to build each
	// backfilled candle in SeedHistory.
	TicksPerCandle int `json:"ticks_per_candle" yaml:"ticks_per_candle"`
}

// DefaultWalkParams returns the gold-like defaults: 4085.50 inside
// [3900, 4300].
func DefaultWalkParams() WalkParams {
	return WalkParams{
		InitialPrice:     4085.50,
		Low:              3900,
		High:             4300,
		Volatility:       0.3,
		TrendFactor:      0.1,
		SpikeProbability: 0.02,
		SpikeMagnitude:   15,
		TicksPerCandle:   30,
	}
}

func (p WalkParams) Validate() error {
	if p.Low >= p.High {
		return fmt.Errorf("price low %.2f must be below high %.2f", p.Low, p.High)
	}
	if p.InitialPrice < p.Low || p.InitialPrice > p.High {
		return fmt.Errorf("initial price %.2f outside [%.2f, %.2f]", p.InitialPrice, p.Low, p.High)
	}
	if p.Volatility < 0 || p.TrendFactor < 0 || p.SpikeMagnitude < 0 {
		return fmt.Errorf("volatility, trend factor and spike magnitude must not be negative")
	}
	if p.SpikeProbability < 0 || p.SpikeProbability > 1 {
		return fmt.Errorf("spike probability must be between 0 and 1")
	}
	if p.TicksPerCandle < 1 {
		return fmt.Errorf("ticks per candle must be positive")
	}
	return nil
}

// Simulator advances a bounded random-walk price and keeps the forming
// candle in step with it. It is not safe for concurrent use; the session
// serializes access.
type Simulator struct {
	params  WalkParams
	rng     Source
	price   float64
	window  *market.CandleWindow
	history *TickHistory
}

func NewSimulator(params WalkParams, capacity int, rng Source) *Simulator {
	return &Simulator{
		params:  params,
		rng:     rng,
		price:   market.Round2(params.InitialPrice),
		window:  market.NewCandleWindow(capacity),
		history: NewTickHistory(HistoryLimit),
	}
}

func (s *Simulator) Price() float64 { return s.price }

func (s *Simulator) Candles() []market.Candle { return s.window.Candles() }

func (s *Simulator) Window() *market.CandleWindow { return s.window }

// PriceChangePercent is the move of the current price against the oldest
// retained tick.
func (s *Simulator) PriceChangePercent() float64 {
	return s.history.ChangePercent(s.price)
}

func (s *Simulator) uniform() float64 {
	return s.rng.Float64() - 0.5
}

// delta draws one walk step. The draw order is fixed: volatility, trend,
// spike gate, then spike size when the gate fires.
func (s *Simulator) delta() float64 {
	noise := s.uniform() * s.params.Volatility
	trend := s.uniform() * s.params.TrendFactor
	spike := 0.0
	if s.rng.Float64() < s.params.SpikeProbability {
		spike = s.uniform() * s.params.SpikeMagnitude
	}
	return noise + trend + spike
}

// Tick advances the price one step and applies it to the forming candle.
func (s *Simulator) Tick() float64 {
	next := market.Clamp(s.price+s.delta(), s.params.Low, s.params.High)
	s.price = market.Round2(next)

	if c := s.window.Last(); c != nil {
		c.Apply(s.price)
	}
	s.history.Add(s.price)
	return s.price
}

// RollCandle seals the forming candle and starts a new flat candle at the
// current price. It returns the sealed candle; ok is false when the window
// was empty.
func (s *Simulator) RollCandle(now time.Time) (sealed market.Candle, ok bool) {
	if c := s.window.Last(); c != nil {
		sealed, ok = *c, true
	}
	s.window.Push(market.NewFlatCandle(now, s.price))
	return sealed, ok
}

// SeedHistory backfills n candles ending just before end, spaced by
// interval, each built from TicksPerCandle walk steps. The tick history is
// reset to the seeded closes.
func (s *Simulator) SeedHistory(n int, end time.Time, interval time.Duration) {
	for i := 0; i < n; i++ {
		t := end.Add(-time.Duration(n-i) * interval)
		s.window.Push(market.NewFlatCandle(t, s.price))
		for k := 0; k < s.params.TicksPerCandle; k++ {
			s.Tick()
		}
	}

	candles := s.window.Candles()
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	s.history.Reset(closes)
}
