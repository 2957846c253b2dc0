package view

import (
	"fmt"
	"io"

	"github.com/rustyeddy/fxtrainer/journal"
)

// RenderEquity writes an equity curve table.
func RenderEquity(w io.Writer, snaps []journal.EquitySnapshot) {
	t := newTable(w, "Time", "Balance", "Equity", "Open P/L", "Used margin", "Free margin")
	for _, e := range snaps {
		t.Append([]string{
			e.Time.Format("2006-01-02 15:04:05"),
			Money(e.Balance),
			Money(e.Equity),
			Money(e.OpenPL),
			Money(e.UsedMargin),
			Money(e.FreeMargin),
		})
	}
	t.Render()
}

// RenderTradeSummary writes one row per journaled trade.
func RenderTradeSummary(w io.Writer, trades []journal.TradeRecord) {
	t := newTable(w, "Session", "ID", "Side", "Lot", "Entry", "Exit", "Pips", "P/L", "Reason")
	for _, r := range trades {
		session := r.SessionID
		if len(session) > 8 {
			session = session[len(session)-8:]
		}
		t.Append([]string{
			session,
			fmt.Sprintf("%d", r.PositionID),
			r.Side,
			fmt.Sprintf("%.2f", r.LotSize),
			fmt.Sprintf("%.2f", r.EntryPrice),
			fmt.Sprintf("%.2f", r.ExitPrice),
			fmt.Sprintf("%.0f", r.Pips),
			Money(r.Profit),
			r.Reason,
		})
	}
	t.Render()
}
