package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/sim"
)

var t0 = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func newRunner(t *testing.T, seed int64, follow bool) (*Runner, *Clock) {
	t.Helper()

	clock := NewClock(t0)
	opts := session.DefaultOptions()
	opts.Seed = seed
	opts.FollowCoach = follow
	opts.Clock = clock.Now

	tr, err := session.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })

	return &Runner{
		Trainer:        tr,
		Clock:          clock,
		TickInterval:   opts.TickInterval,
		CandleInterval: opts.CandleInterval,
		Options:        RunnerOptions{Candles: 20, CloseEnd: true},
	}, clock
}

func TestRunnerValidates(t *testing.T) {
	t.Parallel()

	_, err := (&Runner{}).Run(context.Background(), t0)
	assert.Error(t, err)

	r, _ := newRunner(t, 1, false)
	r.Options.Candles = 0
	_, err = r.Run(context.Background(), t0)
	assert.Error(t, err)

	r.Options.Candles = 1
	r.CandleInterval = r.TickInterval / 2
	_, err = r.Run(context.Background(), t0)
	assert.Error(t, err)
}

func TestRunnerStepsSimulatedTime(t *testing.T) {
	t.Parallel()

	r, clock := newRunner(t, 1, false)
	res, err := r.Run(context.Background(), t0)
	require.NoError(t, err)

	perCandle := int(r.CandleInterval / r.TickInterval)
	assert.Equal(t, 20, res.Candles)
	assert.Equal(t, 20*perCandle, res.Ticks)
	assert.Equal(t, t0.Add(20*r.CandleInterval), res.End)
	assert.Equal(t, res.End, clock.Now())
	assert.Equal(t, 0, res.Stats.TotalTrades)
	assert.Equal(t, 10000.0, res.Metrics.Balance)
}

func TestRunnerFollowCoachIsDeterministic(t *testing.T) {
	t.Parallel()

	a, _ := newRunner(t, 42, true)
	b, _ := newRunner(t, 42, true)
	a.Options.Candles = 60
	b.Options.Candles = 60

	ra, err := a.Run(context.Background(), t0)
	require.NoError(t, err)
	rb, err := b.Run(context.Background(), t0)
	require.NoError(t, err)

	assert.Equal(t, ra.Stats, rb.Stats)
	assert.Equal(t, ra.Metrics, rb.Metrics)
	assert.Empty(t, a.Trainer.OpenPositions())
	assert.InDelta(t, 10000+ra.Stats.TotalPL, ra.Metrics.Balance, 1e-6)

	for _, ct := range a.Trainer.ClosedTrades(0) {
		assert.False(t, ct.CloseTime.Before(t0))
		assert.False(t, ct.CloseTime.After(ra.End))
		assert.Contains(t, []sim.CloseReason{sim.StopLoss, sim.TakeProfit, sim.Manual}, ct.Reason)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	t.Parallel()

	r, _ := newRunner(t, 1, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, t0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultString(t *testing.T) {
	t.Parallel()

	res := Result{Candles: 3, Stats: sim.HistoryStats{TotalTrades: 2, WinRate: 50, TotalPL: 150}, Metrics: sim.Metrics{Balance: 10150}}
	assert.Equal(t, "3 candles, 2 trades, win rate 50.0%, P/L 150.00, balance 10150.00", res.String())
}
