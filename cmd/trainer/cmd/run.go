package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/view"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a trainer session in the terminal",
	Long: `Run a simulated market and print the dashboard each time a candle closes.

Without --follow-coach nothing trades; use serve to trade from a browser.

Examples:
  trainer run --duration 5m --follow-coach
  trainer run -c trainer.yaml --seed 42`,
	RunE: runRun,
}

var (
	runDuration    time.Duration
	runSeed        int64
	runFollowCoach bool
	runQuiet       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random walk seed (overrides config)")
	runCmd.Flags().BoolVar(&runFollowCoach, "follow-coach", false, "open the coach's suggested tickets automatically")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "only print the final dashboard")
}

// newSession builds a trainer from the loaded config.
func newSession() (*session.Trainer, error) {
	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if runSeed != 0 {
		opts.Seed = runSeed
	}
	opts.FollowCoach = runFollowCoach
	opts.Logger = log

	j, err := session.OpenJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	opts.Journal = j

	tr, err := session.New(opts)
	if err != nil {
		j.Close()
		return nil, err
	}
	return tr, nil
}

// signalContext is cancelled on SIGINT/SIGTERM and after d when d > 0.
func signalContext(d time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if d <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	tr, err := newSession()
	if err != nil {
		return err
	}
	defer tr.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s started (journal: %s)\n\n", tr.ID(), cfg.Journal.Type)

	if !runQuiet {
		var lastCandle time.Time
		tr.Subscribe(func(s session.Snapshot) {
			if len(s.Candles) == 0 {
				return
			}
			last := s.Candles[len(s.Candles)-1].Time
			if last.Equal(lastCandle) {
				return
			}
			lastCandle = last
			if err := view.Render(out, s); err != nil {
				log.Warn("render dashboard", zap.Error(err))
			}
			fmt.Fprintln(out)
		})
	}

	ctx, cancel := signalContext(runDuration)
	defer cancel()

	if err := tr.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "Final state:")
	return view.Render(out, tr.Snapshot())
}
