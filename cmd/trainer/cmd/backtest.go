package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxtrainer/backtest"
	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/view"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the coach on a seeded walk in simulated time",
	Long: `Run a session on simulated time, as fast as possible, following the
coach's suggestions, and print the resulting statistics.

Examples:
  trainer backtest --candles 500 --seed 42
  trainer backtest --candles 200 --no-follow`,
	RunE: runBacktest,
}

var (
	backtestCandles  int
	backtestSeed     int64
	backtestNoFollow bool
	backtestKeepOpen bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().IntVarP(&backtestCandles, "candles", "n", 200, "number of candles to simulate")
	backtestCmd.Flags().Int64Var(&backtestSeed, "seed", 1, "random walk seed")
	backtestCmd.Flags().BoolVar(&backtestNoFollow, "no-follow", false, "do not follow the coach (no trades)")
	backtestCmd.Flags().BoolVar(&backtestKeepOpen, "keep-open", false, "leave positions open at the end")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	start := time.Now().Truncate(opts.CandleInterval)
	clock := backtest.NewClock(start)

	opts.Seed = backtestSeed
	opts.FollowCoach = !backtestNoFollow
	opts.Clock = clock.Now
	opts.Logger = log

	j, err := session.OpenJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	opts.Journal = j

	tr, err := session.New(opts)
	if err != nil {
		j.Close()
		return err
	}
	defer tr.Close()

	ctx, cancel := signalContext(0)
	defer cancel()

	r := &backtest.Runner{
		Trainer:        tr,
		Clock:          clock,
		TickInterval:   opts.TickInterval,
		CandleInterval: opts.CandleInterval,
		Options: backtest.RunnerOptions{
			Candles:  backtestCandles,
			CloseEnd: !backtestKeepOpen,
		},
	}
	res, err := r.Run(ctx, start)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s: %s\n\n", res.SessionID, res)
	return view.Render(out, tr.Snapshot())
}
