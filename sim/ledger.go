package sim

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/journal"
	"github.com/rustyeddy/fxtrainer/market"
)

// Metrics are the derived account figures. Only the balance is stored.
type Metrics struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	OpenPL     float64 `json:"open_pl"`
	UsedMargin float64 `json:"used_margin"`
	FreeMargin float64 `json:"free_margin"`
}

// TradeClosedListener is notified for every position the ledger closes.
type TradeClosedListener interface {
	OnTradeClosed(ClosedTrade)
}

// Ledger owns the open positions, the closed-trade log and the balance of a
// single account. It is not safe for concurrent use; callers serialize
// access.
type Ledger struct {
	contract  Contract
	balance   float64
	nextID    int64
	open      []*Position
	closed    []ClosedTrade
	journal   journal.Journal
	sessionID string
	log       *zap.Logger
	listener  TradeClosedListener
}

func NewLedger(c Contract, balance float64, j journal.Journal, log *zap.Logger) *Ledger {
	if j == nil {
		j = journal.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		contract: c,
		balance:  balance,
		nextID:   1,
		journal:  j,
		log:      log,
	}
}

func (l *Ledger) Contract() Contract { return l.contract }

// SetSessionID stamps subsequent journal records.
func (l *Ledger) SetSessionID(id string) { l.sessionID = id }

func (l *Ledger) SetTradeClosedListener(listener TradeClosedListener) {
	l.listener = listener
}

// Open validates the ticket and opens a position at price. Validation runs
// side, lot size, stop loss, take profit, then margin.
func (l *Ledger) Open(side market.Side, lot, slPips, tpPips, price float64, now time.Time) (Position, error) {
	if side != market.Long && side != market.Short {
		return Position{}, reject(InvalidSide, "side %d", int(side))
	}
	if !l.contract.ValidLot(lot) {
		return Position{}, reject(InvalidLotSize, "lot %v outside [%v, %v]", lot, l.contract.MinLot, l.contract.MaxLot)
	}
	if !(slPips >= 1) || math.IsInf(slPips, 1) {
		return Position{}, reject(MissingStopLoss, "stop loss %v pips", slPips)
	}
	if !(tpPips >= 1) || math.IsInf(tpPips, 1) {
		return Position{}, reject(MissingTakeProfit, "take profit %v pips", tpPips)
	}

	required := l.contract.RequiredMargin(lot)
	if free := l.Metrics().FreeMargin; required > free {
		return Position{}, reject(InsufficientMargin, "required %.2f, free %.2f", required, free)
	}

	sl, tp := l.contract.levels(side, price, slPips, tpPips)
	p := &Position{
		ID:              l.nextID,
		Side:            side,
		EntryPrice:      price,
		LotSize:         lot,
		StopLossPrice:   sl,
		TakeProfitPrice: tp,
		OpenTime:        now,
		CurrentPrice:    price,
	}
	l.nextID++
	l.open = append(l.open, p)

	l.log.Debug("position opened",
		zap.Int64("id", p.ID),
		zap.Stringer("side", side),
		zap.Float64("lot", lot),
		zap.Float64("entry", price),
		zap.Float64("sl", sl),
		zap.Float64("tp", tp),
	)
	return *p, nil
}

// MarkToMarket revalues every open position at price and closes those whose
// stop loss or take profit has been reached. The stop loss is checked first.
func (l *Ledger) MarkToMarket(price float64, now time.Time) []ClosedTrade {
	type hit struct {
		id     int64
		reason CloseReason
	}
	var hits []hit

	for _, p := range l.open {
		l.contract.mark(p, price)

		switch {
		case hitStopLoss(p, price):
			hits = append(hits, hit{p.ID, StopLoss})
		case hitTakeProfit(p, price):
			hits = append(hits, hit{p.ID, TakeProfit})
		}
	}

	if len(hits) == 0 {
		return nil
	}

	closed := make([]ClosedTrade, 0, len(hits))
	for _, h := range hits {
		if ct, ok := l.closeOne(h.id, h.reason, now); ok {
			closed = append(closed, ct)
		}
	}
	l.RecordEquity(now)
	l.notify(closed)
	return closed
}

// Close closes the position with the given id at its last marked price.
// Unknown ids are ignored.
func (l *Ledger) Close(id int64, reason CloseReason, now time.Time) (ClosedTrade, bool) {
	ct, ok := l.closeOne(id, reason, now)
	if !ok {
		return ClosedTrade{}, false
	}
	l.RecordEquity(now)
	l.notify([]ClosedTrade{ct})
	return ct, true
}

// CloseAll closes every open position in open order.
func (l *Ledger) CloseAll(reason CloseReason, now time.Time) []ClosedTrade {
	if len(l.open) == 0 {
		return []ClosedTrade{}
	}

	ids := make([]int64, 0, len(l.open))
	for _, p := range l.open {
		ids = append(ids, p.ID)
	}

	closed := make([]ClosedTrade, 0, len(ids))
	for _, id := range ids {
		if ct, ok := l.closeOne(id, reason, now); ok {
			closed = append(closed, ct)
		}
	}
	l.RecordEquity(now)
	l.notify(closed)
	return closed
}

// Modify moves the stop loss and take profit of an open position, measured
// in pips from its entry price. Unknown ids are ignored.
func (l *Ledger) Modify(id int64, slPips, tpPips float64) error {
	i := l.indexOf(id)
	if i < 0 {
		return nil
	}
	if !finitePips(slPips) || !finitePips(tpPips) {
		return ErrInvalidAdjustment
	}

	p := l.open[i]
	p.StopLossPrice, p.TakeProfitPrice = l.contract.levels(p.Side, p.EntryPrice, slPips, tpPips)

	l.log.Debug("position modified",
		zap.Int64("id", id),
		zap.Float64("sl", p.StopLossPrice),
		zap.Float64("tp", p.TakeProfitPrice),
	)
	return nil
}

func (l *Ledger) Metrics() Metrics {
	m := Metrics{Balance: l.balance}
	for _, p := range l.open {
		m.OpenPL += p.Profit
		m.UsedMargin += l.contract.RequiredMargin(p.LotSize)
	}
	m.Equity = m.Balance + m.OpenPL
	m.FreeMargin = m.Equity - m.UsedMargin
	return m
}

func (l *Ledger) Balance() float64 { return l.balance }

// OpenPositions returns copies of the open positions in open order.
func (l *Ledger) OpenPositions() []Position {
	out := make([]Position, 0, len(l.open))
	for _, p := range l.open {
		out = append(out, *p)
	}
	return out
}

// ClosedTrades returns up to limit trades, newest first. limit <= 0 returns
// the whole log.
func (l *Ledger) ClosedTrades(limit int) []ClosedTrade {
	n := len(l.closed)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ClosedTrade, 0, n)
	for i := len(l.closed) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.closed[i])
	}
	return out
}

// RecordEquity writes an equity snapshot to the journal.
func (l *Ledger) RecordEquity(now time.Time) {
	m := l.Metrics()
	err := l.journal.RecordEquity(journal.EquitySnapshot{
		SessionID:  l.sessionID,
		Time:       now,
		Balance:    m.Balance,
		Equity:     m.Equity,
		OpenPL:     m.OpenPL,
		UsedMargin: m.UsedMargin,
		FreeMargin: m.FreeMargin,
	})
	if err != nil {
		l.log.Warn("journal equity failed", zap.Error(err))
	}
}

// Has reports whether id is an open position.
func (l *Ledger) Has(id int64) bool { return l.indexOf(id) >= 0 }

func (l *Ledger) indexOf(id int64) int {
	for i, p := range l.open {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func finitePips(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (l *Ledger) closeOne(id int64, reason CloseReason, now time.Time) (ClosedTrade, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return ClosedTrade{}, false
	}

	p := l.open[i]
	l.open = append(l.open[:i], l.open[i+1:]...)
	l.balance += p.Profit

	ct := ClosedTrade{
		Position:  *p,
		ExitPrice: p.CurrentPrice,
		CloseTime: now,
		Reason:    reason,
	}
	l.closed = append(l.closed, ct)

	err := l.journal.RecordTrade(journal.TradeRecord{
		SessionID:  l.sessionID,
		PositionID: ct.ID,
		Side:       ct.Side.String(),
		LotSize:    ct.LotSize,
		EntryPrice: ct.EntryPrice,
		ExitPrice:  ct.ExitPrice,
		StopLoss:   ct.StopLossPrice,
		TakeProfit: ct.TakeProfitPrice,
		Pips:       ct.Pips,
		Profit:     ct.Profit,
		OpenTime:   ct.OpenTime,
		CloseTime:  ct.CloseTime,
		Reason:     string(reason),
	})
	if err != nil {
		l.log.Warn("journal trade failed", zap.Int64("id", ct.ID), zap.Error(err))
	}

	l.log.Info("position closed",
		zap.Int64("id", ct.ID),
		zap.String("reason", string(reason)),
		zap.Float64("exit", ct.ExitPrice),
		zap.Float64("profit", ct.Profit),
		zap.Float64("balance", l.balance),
	)
	return ct, true
}

func (l *Ledger) notify(closed []ClosedTrade) {
	if l.listener == nil {
		return
	}
	for _, ct := range closed {
		l.listener.OnTradeClosed(ct)
	}
}
