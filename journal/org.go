package journal

import (
	"fmt"
	"strings"
	"time"
)

// reviewHeadings are left empty for the trainee to fill in.
var reviewHeadings = []string{"Setup", "What happened", "Lesson"}

// FormatTradeOrg renders a TradeRecord as an Org-mode entry: facts in a
// PROPERTIES drawer followed by empty review headings.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade #%d: %s %.2f (%s) %s\n",
		t.PositionID, t.Side, t.LotSize, shortID(t.SessionID), outcome(t.Profit))

	props := [][2]string{
		{"SESSION_ID", t.SessionID},
		{"POSITION_ID", fmt.Sprint(t.PositionID)},
		{"SIDE", t.Side},
		{"LOT_SIZE", price(t.LotSize)},
		{"ENTRY_PRICE", price(t.EntryPrice)},
		{"EXIT_PRICE", price(t.ExitPrice)},
		{"STOP_LOSS", price(t.StopLoss)},
		{"TAKE_PROFIT", price(t.TakeProfit)},
		{"PIPS", price(t.Pips)},
		{"PROFIT", price(t.Profit)},
		{"OPEN_TIME", t.OpenTime.UTC().Format(time.RFC3339)},
		{"CLOSE_TIME", t.CloseTime.UTC().Format(time.RFC3339)},
		{"HELD", t.CloseTime.Sub(t.OpenTime).Round(time.Second).String()},
		{"REASON", t.Reason},
	}
	b.WriteString(":PROPERTIES:\n")
	for _, kv := range props {
		fmt.Fprintf(&b, ":%s: %s\n", kv[0], kv[1])
	}
	b.WriteString(":END:\n")

	for _, h := range reviewHeadings {
		fmt.Fprintf(&b, "\n*** %s\n- \n", h)
	}
	return b.String()
}

// FormatTradesOrg renders trades one after another, blank line separated.
func FormatTradesOrg(trades []TradeRecord) string {
	entries := make([]string, len(trades))
	for i, t := range trades {
		entries[i] = FormatTradeOrg(t)
	}
	return strings.Join(entries, "\n")
}

func price(v float64) string { return fmt.Sprintf("%.2f", v) }

func outcome(profit float64) string {
	switch {
	case profit > 0:
		return ":win:"
	case profit < 0:
		return ":loss:"
	default:
		return ":even:"
	}
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
