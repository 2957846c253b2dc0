// Package backtest drives a trainer session on simulated time, as fast as
// the CPU allows, to see how a policy such as following the coach fares on
// a seeded walk.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/sim"
)

// RunnerOptions controls how the runner behaves.
type RunnerOptions struct {
	// Candles is the number of candles to simulate.
	Candles int

	// CloseEnd closes every open position after the last candle.
	CloseEnd bool
}

// Runner steps a session through fast and slow ticks without waiting on
// wall time.
type Runner struct {
	Trainer        *session.Trainer
	Clock          *Clock // optional, advanced on every tick
	TickInterval   time.Duration
	CandleInterval time.Duration
	Options        RunnerOptions
}

type Result struct {
	SessionID string           `json:"session_id"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Ticks     int              `json:"ticks"`
	Candles   int              `json:"candles"`
	Stats     sim.HistoryStats `json:"stats"`
	Metrics   sim.Metrics      `json:"metrics"`
}

func (r Result) String() string {
	return fmt.Sprintf("%d candles, %d trades, win rate %.1f%%, P/L %.2f, balance %.2f",
		r.Candles, r.Stats.TotalTrades, r.Stats.WinRate, r.Stats.TotalPL, r.Metrics.Balance)
}

// Run simulates Options.Candles candles starting at start. Each candle gets
// CandleInterval/TickInterval fast ticks followed by one slow tick.
func (r *Runner) Run(ctx context.Context, start time.Time) (Result, error) {
	if r.Trainer == nil {
		return Result{}, fmt.Errorf("backtest: Trainer is required")
	}
	if r.TickInterval <= 0 || r.CandleInterval < r.TickInterval {
		return Result{}, fmt.Errorf("backtest: invalid intervals %s/%s", r.TickInterval, r.CandleInterval)
	}
	if r.Options.Candles <= 0 {
		return Result{}, fmt.Errorf("backtest: Candles must be positive")
	}

	perCandle := int(r.CandleInterval / r.TickInterval)
	res := Result{SessionID: r.Trainer.ID(), Start: start}

	now := start
	for c := 0; c < r.Options.Candles; c++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		candleStart := now
		for i := 1; i <= perCandle; i++ {
			now = candleStart.Add(time.Duration(i) * r.TickInterval)
			r.advance(now)
			r.Trainer.FastTick(now)
			res.Ticks++
		}

		now = candleStart.Add(r.CandleInterval)
		r.advance(now)
		r.Trainer.SlowTick(now)
		res.Candles++
	}

	if r.Options.CloseEnd {
		r.Trainer.CloseAll()
	}

	res.End = now
	res.Stats = r.Trainer.HistoryStats()
	res.Metrics = r.Trainer.AccountMetrics()
	return res, nil
}

func (r *Runner) advance(t time.Time) {
	if r.Clock != nil {
		r.Clock.Set(t)
	}
}
