package market

import (
	"fmt"
	"strings"
	"time"
)

// Timeframes are the chart labels the trainer offers. They only change how
// candles are labelled for display; the simulation cadence is fixed.
var Timeframes = []string{"1M", "5M", "15M", "1H", "4H", "1D"}

// DefaultTimeframe is the label selected at startup.
const DefaultTimeframe = "15M"

// ParseTimeframe normalizes a label ("15m", "M15", "15M") and returns the
// canonical label plus its nominal duration.
func ParseTimeframe(label string) (string, time.Duration, error) {
	l := strings.ToUpper(strings.TrimSpace(label))
	switch l {
	case "1M", "M1":
		return "1M", time.Minute, nil
	case "5M", "M5":
		return "5M", 5 * time.Minute, nil
	case "15M", "M15":
		return "15M", 15 * time.Minute, nil
	case "1H", "H1":
		return "1H", time.Hour, nil
	case "4H", "H4":
		return "4H", 4 * time.Hour, nil
	case "1D", "D1":
		return "1D", 24 * time.Hour, nil
	default:
		return "", 0, fmt.Errorf("unsupported timeframe %q, want one of %s", label, strings.Join(Timeframes, ", "))
	}
}
