package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/config"
	"github.com/rustyeddy/fxtrainer/journal"
	"github.com/rustyeddy/fxtrainer/pricing"
	"github.com/rustyeddy/fxtrainer/risk"
	"github.com/rustyeddy/fxtrainer/sim"
)

// ClosedTradesShown is how many closed trades a snapshot carries.
const ClosedTradesShown = 20

type Options struct {
	Contract sim.Contract
	Walk     pricing.WalkParams
	Policy   risk.Policy
	Balance  float64

	WindowCapacity int
	HistoryCandles int
	TickInterval   time.Duration
	CandleInterval time.Duration
	Timeframe      string

	// Seed drives the random walk when Rand is nil; 0 seeds from the clock.
	Seed int64
	Rand pricing.Source

	// FollowCoach opens the coach's suggested ticket whenever an
	// opportunity shows up and nothing is open.
	FollowCoach bool

	Journal journal.Journal
	Logger  *zap.Logger
	Clock   func() time.Time
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(err)
	}
	return opts
}

// OptionsFromConfig maps a validated configuration onto trainer options.
// Journal, Logger and Rand are left for the caller.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	tick, candle, err := cfg.Simulation.Intervals()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Contract:       cfg.Contract,
		Walk:           cfg.Simulation.Walk,
		Policy:         risk.DefaultPolicy(),
		Balance:        cfg.Account.Balance,
		WindowCapacity: cfg.Simulation.WindowCapacity,
		HistoryCandles: cfg.Simulation.HistoryCandles,
		TickInterval:   tick,
		CandleInterval: candle,
		Timeframe:      cfg.Simulation.Timeframe,
		Seed:           cfg.Simulation.Seed,
	}, nil
}

func (o Options) validate() error {
	if o.Balance <= 0 {
		return fmt.Errorf("balance must be positive")
	}
	if err := o.Contract.Validate(); err != nil {
		return fmt.Errorf("contract: %w", err)
	}
	if err := o.Walk.Validate(); err != nil {
		return fmt.Errorf("walk: %w", err)
	}
	if o.WindowCapacity < 1 {
		return fmt.Errorf("window capacity must be positive")
	}
	if o.HistoryCandles < 0 {
		return fmt.Errorf("history candles must not be negative")
	}
	if o.TickInterval <= 0 || o.CandleInterval <= 0 {
		return fmt.Errorf("tick and candle intervals must be positive")
	}
	return nil
}

// OpenJournal opens the journal selected by cfg.
func OpenJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
