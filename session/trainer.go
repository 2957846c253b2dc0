// Package session runs one trainer session: it owns the price simulator,
// the position ledger and the latest coach report, and serializes every
// command and tick through a single mutex.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/coach"
	"github.com/rustyeddy/fxtrainer/journal"
	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/pkg/id"
	"github.com/rustyeddy/fxtrainer/pricing"
	"github.com/rustyeddy/fxtrainer/risk"
	"github.com/rustyeddy/fxtrainer/sim"
)

// Ticket is the draft order shown in the order form.
type Ticket struct {
	Lot    float64 `json:"lot"`
	SLPips float64 `json:"sl_pips"`
	TPPips float64 `json:"tp_pips"`
}

var DefaultTicket = Ticket{Lot: 0.10, SLPips: 30, TPPips: 60}

type Trainer struct {
	mu sync.Mutex

	id        string
	opts      Options
	sim       *pricing.Simulator
	ledger    *sim.Ledger
	report    coach.Report
	timeframe string
	ticket    Ticket
	now       time.Time

	// closes collected from the ledger while the lock is held
	pending []sim.ClosedTrade

	snapshotSubs []func(Snapshot)
	tradeSubs    []func(sim.ClosedTrade)

	journal journal.Journal
	log     *zap.Logger
}

// New creates a trainer and backfills its candle history so the indicators
// are warm from the first tick.
func New(opts Options) (*Trainer, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}

	tf := opts.Timeframe
	if tf == "" {
		tf = market.DefaultTimeframe
	}
	tf, _, err := market.ParseTimeframe(tf)
	if err != nil {
		return nil, err
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop{}
	}
	if opts.Rand == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	now := opts.Clock()
	sessionID := id.NewAt(now)
	log := opts.Logger.With(zap.String("session", sessionID))

	t := &Trainer{
		id:        sessionID,
		opts:      opts,
		sim:       pricing.NewSimulator(opts.Walk, opts.WindowCapacity, opts.Rand),
		timeframe: tf,
		ticket:    DefaultTicket,
		now:       now,
		journal:   opts.Journal,
		log:       log,
	}

	t.ledger = sim.NewLedger(opts.Contract, opts.Balance, opts.Journal, log)
	t.ledger.SetSessionID(sessionID)
	t.ledger.SetTradeClosedListener(closeCollector(func(ct sim.ClosedTrade) {
		t.pending = append(t.pending, ct)
	}))

	t.sim.SeedHistory(opts.HistoryCandles, now, opts.CandleInterval)
	if t.sim.Window().Len() == 0 {
		t.sim.RollCandle(now)
	}
	t.recomputeLocked()

	log.Info("session started",
		zap.Float64("balance", opts.Balance),
		zap.Float64("price", t.sim.Price()),
		zap.Int("candles", t.sim.Window().Len()),
	)
	return t, nil
}

// closeCollector gathers ledger closes while the lock is held; they are
// published once it is released.
type closeCollector func(sim.ClosedTrade)

func (f closeCollector) OnTradeClosed(ct sim.ClosedTrade) { f(ct) }

func (t *Trainer) ID() string { return t.id }

// Subscribe registers fn to receive a snapshot after every tick and
// command. fn runs outside the trainer lock.
func (t *Trainer) Subscribe(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshotSubs = append(t.snapshotSubs, fn)
}

// OnTrade registers fn to receive every closed trade.
func (t *Trainer) OnTrade(fn func(sim.ClosedTrade)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tradeSubs = append(t.tradeSubs, fn)
}

// FastTick advances the price, marks positions to market, and refreshes the
// coach report.
func (t *Trainer) FastTick(now time.Time) {
	t.mu.Lock()
	t.now = now
	price := t.sim.Tick()
	t.ledger.MarkToMarket(price, now)
	t.recomputeLocked()
	if t.opts.FollowCoach {
		t.followCoachLocked(now)
	}
	t.unlockAndPublish()
}

// SlowTick seals the forming candle, starts a new one and journals the
// account equity.
func (t *Trainer) SlowTick(now time.Time) {
	t.mu.Lock()
	t.now = now
	if sealed, ok := t.sim.RollCandle(now); ok {
		t.log.Debug("candle sealed",
			zap.Time("time", sealed.Time),
			zap.Float64("open", sealed.Open),
			zap.Float64("high", sealed.High),
			zap.Float64("low", sealed.Low),
			zap.Float64("close", sealed.Close),
		)
	}
	t.ledger.RecordEquity(now)
	t.recomputeLocked()
	t.unlockAndPublish()
}

// Open places a market order at the current price.
func (t *Trainer) Open(side market.Side, lot, slPips, tpPips float64) (sim.Position, error) {
	t.mu.Lock()
	now := t.opts.Clock()
	p, err := t.ledger.Open(side, lot, slPips, tpPips, t.sim.Price(), now)
	if err != nil {
		t.mu.Unlock()
		var rej *sim.RejectError
		if errors.As(err, &rej) {
			t.log.Info("order rejected", zap.String("reason", string(rej.Reason)))
		}
		return sim.Position{}, err
	}
	t.recomputeLocked()
	t.unlockAndPublish()
	return p, nil
}

// CloseByID closes one position manually; ok is false for unknown ids.
func (t *Trainer) CloseByID(positionID int64) (sim.ClosedTrade, bool) {
	t.mu.Lock()
	ct, ok := t.ledger.Close(positionID, sim.Manual, t.opts.Clock())
	if !ok {
		t.mu.Unlock()
		return sim.ClosedTrade{}, false
	}
	t.recomputeLocked()
	t.unlockAndPublish()
	return ct, true
}

func (t *Trainer) CloseAll() []sim.ClosedTrade {
	t.mu.Lock()
	closed := t.ledger.CloseAll(sim.Manual, t.opts.Clock())
	t.recomputeLocked()
	t.unlockAndPublish()
	return closed
}

// Modify moves the stops of an open position. Unknown ids are a silent
// no-op and publish nothing.
func (t *Trainer) Modify(positionID int64, slPips, tpPips float64) error {
	t.mu.Lock()
	if !t.ledger.Has(positionID) {
		t.mu.Unlock()
		return nil
	}
	if err := t.ledger.Modify(positionID, slPips, tpPips); err != nil {
		t.mu.Unlock()
		return err
	}
	t.unlockAndPublish()
	return nil
}

// SetTimeframe changes the chart label. The simulation is unaffected.
func (t *Trainer) SetTimeframe(label string) error {
	tf, _, err := market.ParseTimeframe(label)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.timeframe = tf
	t.unlockAndPublish()
	return nil
}

// SetTicket updates the draft order and returns its check.
func (t *Trainer) SetTicket(tk Ticket) risk.Decision {
	t.mu.Lock()
	t.ticket = tk
	d := t.checkTicketLocked()
	t.unlockAndPublish()
	return d
}

func (t *Trainer) CurrentPrice() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sim.Price()
}

func (t *Trainer) Candles() []market.Candle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sim.Candles()
}

func (t *Trainer) OpenPositions() []sim.Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.OpenPositions()
}

// ClosedTrades returns up to limit trades, newest first; limit <= 0 returns
// all of them.
func (t *Trainer) ClosedTrades(limit int) []sim.ClosedTrade {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.ClosedTrades(limit)
}

func (t *Trainer) AccountMetrics() sim.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Metrics()
}

func (t *Trainer) CoachReport() coach.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.report
}

func (t *Trainer) HistoryStats() sim.HistoryStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Stats()
}

func (t *Trainer) Timeframe() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeframe
}

func (t *Trainer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Close closes the journal.
func (t *Trainer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Info("session closed",
		zap.Float64("balance", t.ledger.Balance()),
		zap.Int("trades", len(t.ledger.ClosedTrades(0))),
	)
	return t.journal.Close()
}

func (t *Trainer) recomputeLocked() {
	t.report = coach.Analyze(coach.Input{
		Candles:   t.sim.Candles(),
		Price:     t.sim.Price(),
		Positions: t.ledger.OpenPositions(),
		Metrics:   t.ledger.Metrics(),
	})
}

func (t *Trainer) checkTicketLocked() risk.Decision {
	return risk.CheckTicket(t.opts.Policy, risk.TicketInput{
		Lot:     t.ticket.Lot,
		SLPips:  t.ticket.SLPips,
		TPPips:  t.ticket.TPPips,
		Balance: t.ledger.Balance(),
	})
}

func (t *Trainer) followCoachLocked(now time.Time) {
	s := t.report.Suggestion
	if s == nil || len(t.ledger.OpenPositions()) > 0 {
		return
	}
	p, err := t.ledger.Open(s.Side, s.MinLot, s.SLPips, s.TPPips, t.sim.Price(), now)
	if err != nil {
		t.log.Info("coach ticket rejected", zap.Error(err))
		return
	}
	t.log.Info("coach ticket opened", zap.Int64("id", p.ID), zap.Stringer("side", p.Side))
	t.recomputeLocked()
}

// unlockAndPublish takes a snapshot, releases the lock and notifies the
// subscribers.
func (t *Trainer) unlockAndPublish() {
	snap := t.snapshotLocked()
	closed := t.pending
	t.pending = nil
	snapSubs := append(([]func(Snapshot))(nil), t.snapshotSubs...)
	tradeSubs := append(([]func(sim.ClosedTrade))(nil), t.tradeSubs...)
	t.mu.Unlock()

	for _, ct := range closed {
		for _, fn := range tradeSubs {
			fn(ct)
		}
	}
	for _, fn := range snapSubs {
		fn(snap)
	}
}
