package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	closeT := time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC)
	out := FormatTradeOrg(sampleTrade("01HQZX5M8RABCDEF", 3, closeT))

	for _, want := range []string{
		"** Trade #3: BUY 0.10 (01HQZX5M) :win:\n",
		":PROPERTIES:\n",
		":SESSION_ID: 01HQZX5M8RABCDEF\n",
		":POSITION_ID: 3\n",
		":ENTRY_PRICE: 4000.00\n",
		":EXIT_PRICE: 4000.50\n",
		":STOP_LOSS: 3999.70\n",
		":PIPS: 50.00\n",
		":PROFIT: 500.00\n",
		":OPEN_TIME: 2024-03-15T14:19:30Z\n",
		":CLOSE_TIME: 2024-03-15T14:20:30Z\n",
		":HELD: 1m0s\n",
		":REASON: Manual\n",
		":END:\n\n*** Setup\n",
		"*** Lesson\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatTradeOrgOutcomeTag(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC)
	tests := []struct {
		profit float64
		tag    string
	}{
		{500, ":win:"},
		{-300, ":loss:"},
		{0, ":even:"},
	}
	for _, tt := range tests {
		r := sampleTrade("S", 1, ts)
		r.Profit = tt.profit
		first := strings.SplitN(FormatTradeOrg(r), "\n", 2)[0]
		assert.True(t, strings.HasSuffix(first, tt.tag), first)
	}
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC)
	out := FormatTradesOrg([]TradeRecord{sampleTrade("S", 1, ts), sampleTrade("S", 2, ts)})

	assert.Equal(t, 2, strings.Count(out, ":PROPERTIES:"))
	assert.Contains(t, out, "- \n\n** Trade #2")
	assert.Empty(t, FormatTradesOrg(nil))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789"))
}
