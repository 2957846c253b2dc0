package session

import (
	"time"

	"github.com/rustyeddy/fxtrainer/coach"
	"github.com/rustyeddy/fxtrainer/market"
	"github.com/rustyeddy/fxtrainer/risk"
	"github.com/rustyeddy/fxtrainer/sim"
)

// PositionView is an open position with its share of the balance.
type PositionView struct {
	sim.Position
	ProfitPercent float64 `json:"profit_percent"`
}

// Snapshot is everything a presentation adapter renders. It holds copies
// only.
type Snapshot struct {
	SessionID          string    `json:"session_id"`
	Time               time.Time `json:"time"`
	Price              float64   `json:"price"`
	PriceChangePercent float64   `json:"price_change_percent"`
	Timeframe          string    `json:"timeframe"`

	Candles      []market.Candle   `json:"candles"`
	Positions    []PositionView    `json:"positions"`
	ClosedTrades []sim.ClosedTrade `json:"closed_trades"`
	Metrics      sim.Metrics       `json:"metrics"`
	Stats        sim.HistoryStats  `json:"stats"`
	Coach        coach.Report      `json:"coach"`

	Ticket      Ticket        `json:"ticket"`
	TicketCheck risk.Decision `json:"ticket_check"`
}

func (t *Trainer) snapshotLocked() Snapshot {
	balance := t.ledger.Balance()

	open := t.ledger.OpenPositions()
	views := make([]PositionView, 0, len(open))
	for _, p := range open {
		pct := 0.0
		if balance != 0 {
			pct = market.Round2(p.Profit / balance * 100)
		}
		views = append(views, PositionView{Position: p, ProfitPercent: pct})
	}

	return Snapshot{
		SessionID:          t.id,
		Time:               t.now,
		Price:              t.sim.Price(),
		PriceChangePercent: market.Round2(t.sim.PriceChangePercent()),
		Timeframe:          t.timeframe,
		Candles:            t.sim.Candles(),
		Positions:          views,
		ClosedTrades:       t.ledger.ClosedTrades(ClosedTradesShown),
		Metrics:            t.ledger.Metrics(),
		Stats:              t.ledger.Stats(),
		Coach:              t.report,
		Ticket:             t.ticket,
		TicketCheck:        t.checkTicketLocked(),
	}
}
