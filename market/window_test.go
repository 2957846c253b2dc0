package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandleWindowEvictsOldest(t *testing.T) {
	t.Parallel()

	w := NewCandleWindow(3)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		assert.False(t, w.Push(NewFlatCandle(t0.Add(time.Duration(i)*time.Minute), float64(4000+i))))
	}
	assert.True(t, w.Push(NewFlatCandle(t0.Add(3*time.Minute), 4003)))

	got := w.Candles()
	require.Len(t, got, 3)
	assert.Equal(t, 4001.0, got[0].Close)
	assert.Equal(t, 4003.0, got[2].Close)
	assert.Equal(t, 3, w.Capacity())
}

func TestCandleWindowLastIsMutable(t *testing.T) {
	t.Parallel()

	w := NewCandleWindow(5)
	assert.Nil(t, w.Last())

	w.Push(NewFlatCandle(time.Time{}, 4000))
	w.Last().Apply(4001.25)
	w.Last().Apply(3999.5)

	c := w.Candles()[0]
	assert.Equal(t, 3999.5, c.Close)
	assert.Equal(t, 4001.25, c.High)
	assert.Equal(t, 3999.5, c.Low)
	assert.True(t, c.Valid())
}

func TestCandlesReturnsCopy(t *testing.T) {
	t.Parallel()

	w := NewCandleWindow(2)
	w.Push(NewFlatCandle(time.Time{}, 4000))

	cp := w.Candles()
	cp[0].Close = 1
	assert.Equal(t, 4000.0, w.Last().Close)
}

func TestRound2AndClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4085.5, Round2(4085.499999))
	assert.Equal(t, 3999.7, Round2(4000-30*0.01))
	assert.Equal(t, 3900.0, Clamp(3800, 3900, 4300))
	assert.Equal(t, 4300.0, Clamp(4400, 3900, 4300))
	assert.Equal(t, 4000.0, Clamp(4000, 3900, 4300))
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"BUY", Long, false},
		{"long", Long, false},
		{" sell ", Short, false},
		{"SHORT", Short, false},
		{"hold", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSideText(t *testing.T) {
	t.Parallel()

	b, err := Short.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SELL", string(b))

	var s Side
	require.NoError(t, s.UnmarshalText([]byte("buy")))
	assert.Equal(t, Long, s)
	assert.Equal(t, -1.0, Short.Sign())
	assert.Equal(t, 1.0, Long.Sign())

	_, err = Side(0).MarshalText()
	assert.Error(t, err)
}

func TestParseTimeframe(t *testing.T) {
	t.Parallel()

	for _, l := range Timeframes {
		got, _, err := ParseTimeframe(l)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	got, d, err := ParseTimeframe("m15")
	require.NoError(t, err)
	assert.Equal(t, "15M", got)
	assert.Equal(t, 15*time.Minute, d)

	_, _, err = ParseTimeframe("2W")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1M, 5M, 15M, 1H, 4H, 1D")
}
