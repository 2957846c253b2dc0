package indicators

import (
	"testing"

	"github.com/rustyeddy/fxtrainer/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromCloses(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Open: c, High: c, Low: c, Close: c}
	}
	return out
}

func TestSMA(t *testing.T) {
	t.Parallel()

	got := SMA(fromCloses(10, 20, 30, 40, 50), 3)
	require.Len(t, got, 5)

	assert.False(t, Defined(got[0]))
	assert.False(t, Defined(got[1]))
	assert.InDelta(t, 20.0, got[2], 1e-9)
	assert.InDelta(t, 30.0, got[3], 1e-9)
	assert.InDelta(t, 40.0, got[4], 1e-9)

	last, ok := got.Last()
	assert.True(t, ok)
	assert.InDelta(t, 40.0, last, 1e-9)
}

func TestSMAInsufficientHistory(t *testing.T) {
	t.Parallel()

	got := SMA(fromCloses(1, 2), 5)
	require.Len(t, got, 2)
	_, ok := got.Last()
	assert.False(t, ok)

	for _, v := range SMA(fromCloses(1, 2, 3), 0) {
		assert.False(t, Defined(v))
	}
	assert.Empty(t, SMA(nil, 3))
}

func TestRSINotEnoughData(t *testing.T) {
	t.Parallel()

	got := RSI(fromCloses(1, 2, 3, 4, 5), DefaultRSIPeriod)
	require.Len(t, got, 5)
	for _, v := range got {
		assert.Equal(t, RSINeutral, v)
	}
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 4000 + float64(i)
	}
	got := RSI(fromCloses(closes...), 14)

	for i := 0; i < 14; i++ {
		assert.Equal(t, RSINeutral, got[i], "warm-up index %d", i)
	}
	for i := 14; i < len(got); i++ {
		assert.Equal(t, RSIMax, got[i], "index %d", i)
	}
}

func TestRSIAllLosses(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = 4000 - float64(i)
	}
	got := RSI(fromCloses(closes...), 14)
	assert.InDelta(t, 0.0, got[15], 1e-9)
}

func TestRSIMixed(t *testing.T) {
	t.Parallel()

	// period 2: changes +2, -1 => avgGain 1, avgLoss 0.5, rs 2, rsi 66.67
	got := RSI(fromCloses(10, 12, 11), 2)
	assert.Equal(t, RSINeutral, got[0])
	assert.Equal(t, RSINeutral, got[1])
	assert.InDelta(t, 100-100/3.0, got[2], 1e-9)
}

func TestAverageRange(t *testing.T) {
	t.Parallel()

	candles := []market.Candle{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 14, Low: 10, Close: 11},
	}

	avg, ok := AverageRange(candles, 2)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)

	_, ok = AverageRange(candles, 4)
	assert.False(t, ok)

	atr, ok := AverageTrueRange(candles, 2)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, atr, 1e-9)
}

func TestTrueRange(t *testing.T) {
	t.Parallel()

	current := market.Candle{High: 110, Low: 100, Close: 105}
	previous := market.Candle{Close: 115}
	assert.Equal(t, 15.0, trueRange(current, previous))
}

func TestSeriesAtOutOfRange(t *testing.T) {
	t.Parallel()

	s := Series{1, 2}
	_, ok := s.At(-1)
	assert.False(t, ok)
	_, ok = s.At(2)
	assert.False(t, ok)
	v, ok := s.At(1)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestCloses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{1, 2, 3}, Closes(fromCloses(1, 2, 3)))
}
