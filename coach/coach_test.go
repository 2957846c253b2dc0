package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/sim"
)

func flat(closes ...float64) []market.Candle {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.NewFlatCandle(t0.Add(time.Duration(i)*15*time.Second), c)
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// 30 flat closes then 20 alternating around a higher mean: aligned but
// noisy, with a neutral RSI.
func choppyUp() []float64 {
	closes := make([]float64, 0, 50)
	for i := 0; i < 30; i++ {
		closes = append(closes, 100)
	}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			closes = append(closes, 96)
		} else {
			closes = append(closes, 108)
		}
	}
	return closes
}

func TestAnalyzeNotEnoughHistory(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(ramp(5, 100, 1)...), Price: 105})

	assert.False(t, r.MA20Defined)
	assert.False(t, r.MA50Defined)
	assert.InDelta(t, 50, r.RSI, 1e-9)
	assert.Equal(t, Sideways, r.Trend)
	assert.Equal(t, Weak, r.Strength)
	assert.Equal(t, VolatilityUnknown, r.Volatility)
	assert.Nil(t, r.Suggestion)
	require.NotEmpty(t, r.Steps)
	assert.Equal(t, "OBSERVATION MODE", r.Steps[0].Text)
	require.Len(t, r.Signals, 2)
	assert.Equal(t, KindWarning, r.Signals[0].Kind)
}

func TestAnalyzeStrongUptrendOverbought(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(ramp(60, 1, 1)...), Price: 61})

	assert.InDelta(t, 50.5, r.MA20, 1e-9)
	assert.InDelta(t, 35.5, r.MA50, 1e-9)
	assert.InDelta(t, 100, r.RSI, 1e-9)
	assert.Equal(t, Uptrend, r.Trend)
	assert.Equal(t, Strong, r.Strength)
	assert.Equal(t, VolatilityLow, r.Volatility)

	assert.Nil(t, r.Suggestion)
	assert.Equal(t, "MARKET OVERBOUGHT", r.Steps[0].Text)
	assert.Equal(t, KindBuy, r.Signals[0].Kind)
	assert.Equal(t, "Overbought (RSI 100): pullback possible", r.Signals[1].Text)
}

func TestAnalyzeStrongDowntrendOversold(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(ramp(60, 200, -1)...), Price: 140})

	assert.Equal(t, Downtrend, r.Trend)
	assert.Equal(t, Strong, r.Strength)
	assert.InDelta(t, 0, r.RSI, 1e-9)
	assert.Equal(t, "MARKET OVERSOLD", r.Steps[0].Text)
	assert.Equal(t, KindSell, r.Signals[0].Kind)
}

func TestAnalyzeModerateUptrendBuyOpportunity(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(choppyUp()...), Price: 103})

	assert.InDelta(t, 102, r.MA20, 1e-9)
	assert.InDelta(t, 100.8, r.MA50, 1e-9)
	assert.InDelta(t, 50, r.RSI, 1e-9)
	assert.Equal(t, Uptrend, r.Trend)
	assert.Equal(t, Moderate, r.Strength)

	require.NotNil(t, r.Suggestion)
	assert.True(t, r.Opportunity())
	assert.Equal(t, market.Long, r.Suggestion.Side)
	assert.InDelta(t, 0.05, r.Suggestion.MinLot, 1e-9)
	assert.InDelta(t, 0.10, r.Suggestion.MaxLot, 1e-9)
	assert.InDelta(t, 30, r.Suggestion.SLPips, 1e-9)
	assert.InDelta(t, 60, r.Suggestion.TPPips, 1e-9)

	require.Len(t, r.Steps, 5)
	assert.Equal(t, "BUY OPPORTUNITY DETECTED", r.Steps[0].Text)
	assert.Equal(t, "Step 2: RSI at 50 (good for entry)", r.Steps[2].Text)
	assert.Equal(t, "Step 4: Suggested lot 0.05-0.10 | SL: 30 pips | TP: 60 pips", r.Steps[4].Text)
}

func TestAnalyzeSellOpportunity(t *testing.T) {
	t.Parallel()

	closes := choppyUp()
	for i := range closes {
		closes[i] = 200 - closes[i]
	}
	r := Analyze(Input{Candles: flat(closes...), Price: 97})

	assert.Equal(t, Downtrend, r.Trend)
	require.NotNil(t, r.Suggestion)
	assert.Equal(t, market.Short, r.Suggestion.Side)
	assert.Equal(t, "SELL OPPORTUNITY DETECTED", r.Steps[0].Text)
}

func TestAnalyzeSidewaysWhenPriceBetweenMAs(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(ramp(60, 1, 1)...), Price: 40})

	assert.Equal(t, Sideways, r.Trend)
	assert.Equal(t, Weak, r.Strength)
	assert.Equal(t, "Mixed signal: wait for confirmation", r.Signals[0].Text)
}

func TestVolatilityBuckets(t *testing.T) {
	t.Parallel()

	mk := func(rng float64) []market.Candle {
		cs := flat(ramp(10, 4000, 0)...)
		for i := range cs {
			cs[i].High += rng / 2
			cs[i].Low -= rng / 2
		}
		return cs
	}

	tests := []struct {
		rng  float64
		want Volatility
	}{
		{0, VolatilityLow},
		{4.99, VolatilityLow},
		{5, VolatilityMedium},
		{9.5, VolatilityMedium},
		{10, VolatilityHigh},
	}
	for _, tt := range tests {
		v, avg := volatilityOf(mk(tt.rng))
		assert.Equal(t, tt.want, v, "range %v", tt.rng)
		assert.InDelta(t, tt.rng, avg, 1e-9)
	}

	v, _ := volatilityOf(mk(3)[:9])
	assert.Equal(t, VolatilityUnknown, v)
}

func TestRiskPanel(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{
		Candles: flat(ramp(5, 4000, 0)...),
		Price:   4000,
		Positions: []sim.Position{
			{ID: 1, Side: market.Long, LotSize: 0.1},
			{ID: 2, Side: market.Long, LotSize: 0.2},
			{ID: 3, Side: market.Short, LotSize: 0.05},
		},
		Metrics: sim.Metrics{Balance: 10000, Equity: 10000, UsedMargin: 350, FreeMargin: 9650},
	})

	assert.InDelta(t, 9650, r.Risk.FreeMargin, 1e-9)
	assert.InDelta(t, 0.10, r.Risk.SafeLot, 1e-9)
	assert.InDelta(t, 3.5, r.Risk.MarginUsagePct, 1e-9)
	assert.Equal(t, 2, r.Risk.LongCount)
	assert.InDelta(t, 0.3, r.Risk.LongLots, 1e-9)
	assert.Equal(t, 1, r.Risk.ShortCount)
	assert.InDelta(t, 0.05, r.Risk.ShortLots, 1e-9)
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	in := Input{Candles: flat(choppyUp()...), Price: 103, Metrics: sim.Metrics{Balance: 10000}}
	assert.Equal(t, Analyze(in), Analyze(in))
}

func TestAnalyzeATR(t *testing.T) {
	t.Parallel()

	r := Analyze(Input{Candles: flat(ramp(20, 100, 1)...), Price: 119})
	require.True(t, r.ATRDefined)
	assert.InDelta(t, 1.0, r.ATR, 1e-9)

	r = Analyze(Input{Candles: flat(ramp(ATRPeriod, 100, 1)...), Price: 113})
	assert.False(t, r.ATRDefined)
}
