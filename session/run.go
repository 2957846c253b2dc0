package session

import (
	"context"
	"time"
)

// Run drives FastTick and SlowTick from two tickers until ctx is done.
// Stopping the session stops both tickers.
func (t *Trainer) Run(ctx context.Context) error {
	fast := time.NewTicker(t.opts.TickInterval)
	defer fast.Stop()
	slow := time.NewTicker(t.opts.CandleInterval)
	defer slow.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-fast.C:
			t.FastTick(now)
		case now := <-slow.C:
			t.SlowTick(now)
		}
	}
}
