// Package view renders trainer snapshots as plain-text dashboards.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/fxtrainer/session"
	"github.com/rustyeddy/fxtrainer/sim"
)

var printer = message.NewPrinter(language.English)

// Money formats an amount with thousands separators, e.g. $10,000.00.
func Money(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", -v)
	}
	return "$" + printer.Sprintf("%.2f", v)
}

// Render writes the full dashboard for s.
func Render(w io.Writer, s session.Snapshot) error {
	b := &strings.Builder{}

	fmt.Fprintf(b, "Session %s  %s  [%s]\n", s.SessionID, s.Time.Format("2006-01-02 15:04:05"), s.Timeframe)
	fmt.Fprintf(b, "Price %.2f (%+.2f%%)\n\n", s.Price, s.PriceChangePercent)

	b.WriteString("Account:\n")
	renderMetrics(b, s.Metrics)

	if len(s.Positions) > 0 {
		b.WriteString("\nOpen positions:\n")
		renderPositions(b, s.Positions)
	}

	if len(s.ClosedTrades) > 0 {
		b.WriteString("\nRecent trades:\n")
		renderTrades(b, s.ClosedTrades)
	}

	b.WriteString("\nStatistics:\n")
	renderStats(b, s.Stats)

	b.WriteString("\nCoach:\n")
	renderCoach(b, s)

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	if len(header) > 0 {
		t.SetHeader(header)
	}
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.SetAutoWrapText(false)
	return t
}

func renderMetrics(w io.Writer, m sim.Metrics) {
	t := newTable(w, "Balance", "Equity", "Open P/L", "Used margin", "Free margin")
	t.Append([]string{
		Money(m.Balance),
		Money(m.Equity),
		Money(m.OpenPL),
		Money(m.UsedMargin),
		Money(m.FreeMargin),
	})
	t.Render()
}

func renderPositions(w io.Writer, ps []session.PositionView) {
	t := newTable(w, "ID", "Side", "Lot", "Entry", "SL", "TP", "Pips", "P/L", "%")
	for _, p := range ps {
		t.Append([]string{
			fmt.Sprintf("%d", p.ID),
			p.Side.String(),
			fmt.Sprintf("%.2f", p.LotSize),
			fmt.Sprintf("%.2f", p.EntryPrice),
			fmt.Sprintf("%.2f", p.StopLossPrice),
			fmt.Sprintf("%.2f", p.TakeProfitPrice),
			fmt.Sprintf("%.0f", p.Pips),
			Money(p.Profit),
			fmt.Sprintf("%.2f%%", p.ProfitPercent),
		})
	}
	t.Render()
}

func renderTrades(w io.Writer, trades []sim.ClosedTrade) {
	t := newTable(w, "ID", "Side", "Lot", "Entry", "Exit", "Pips", "P/L", "Reason", "Closed")
	for _, ct := range trades {
		t.Append([]string{
			fmt.Sprintf("%d", ct.ID),
			ct.Side.String(),
			fmt.Sprintf("%.2f", ct.LotSize),
			fmt.Sprintf("%.2f", ct.EntryPrice),
			fmt.Sprintf("%.2f", ct.ExitPrice),
			fmt.Sprintf("%.0f", ct.Pips),
			Money(ct.Profit),
			string(ct.Reason),
			ct.CloseTime.Format("15:04:05"),
		})
	}
	t.Render()
}

func renderStats(w io.Writer, st sim.HistoryStats) {
	t := newTable(w, "Trades", "Won", "Lost", "Win rate", "Total P/L", "Avg", "Best", "Worst")
	t.Append([]string{
		fmt.Sprintf("%d", st.TotalTrades),
		fmt.Sprintf("%d", st.Winners),
		fmt.Sprintf("%d", st.Losers),
		fmt.Sprintf("%.1f%%", st.WinRate),
		Money(st.TotalPL),
		Money(st.AveragePL),
		Money(st.BestTrade),
		Money(st.WorstTrade),
	})
	t.Render()
}

func renderCoach(w io.Writer, s session.Snapshot) {
	r := s.Coach

	ma := func(v float64, ok bool) string {
		if !ok {
			return "-"
		}
		return fmt.Sprintf("%.2f", v)
	}

	t := newTable(w, "Trend", "Strength", "Volatility", "MA20", "MA50", "RSI", "ATR")
	t.Append([]string{
		string(r.Trend),
		string(r.Strength),
		string(r.Volatility),
		ma(r.MA20, r.MA20Defined),
		ma(r.MA50, r.MA50Defined),
		fmt.Sprintf("%.1f", r.RSI),
		ma(r.ATR, r.ATRDefined),
	})
	t.Render()

	for _, sig := range r.Signals {
		fmt.Fprintf(w, "  * %s\n", sig.Text)
	}
	for _, st := range r.Steps {
		fmt.Fprintf(w, "  %s\n", st.Text)
	}

	fmt.Fprintf(w, "  Free margin %s | safe lot %.2f | margin used %.1f%%\n",
		Money(r.Risk.FreeMargin), r.Risk.SafeLot, r.Risk.MarginUsagePct)
	fmt.Fprintf(w, "  Exposure: %d long (%.2f lots), %d short (%.2f lots)\n",
		r.Risk.LongCount, r.Risk.LongLots, r.Risk.ShortCount, r.Risk.ShortLots)

	d := s.TicketCheck
	fmt.Fprintf(w, "  Ticket %.2f lot, SL %.0f, TP %.0f: %s (RR 1:%.1f, risk %s = %.1f%%)\n",
		s.Ticket.Lot, s.Ticket.SLPips, s.Ticket.TPPips, d.Status, d.RR, Money(d.RiskAmount), d.RiskPct)
	for _, v := range d.Violations {
		fmt.Fprintf(w, "    ! %s\n", v.Msg)
	}
}
