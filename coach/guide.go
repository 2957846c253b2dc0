package coach

import (
	"fmt"

	"github.com/rustyeddy/fxtrainer/market"
)

type Kind string

const (
	KindBuy     Kind = "buy"
	KindSell    Kind = "sell"
	KindWarning Kind = "warning"
	KindAction  Kind = "action"
	KindInfo    Kind = ""
)

type Signal struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type Step struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Suggestion is the ticket proposed when the guide detects an opportunity.
type Suggestion struct {
	Side   market.Side `json:"side"`
	MinLot float64     `json:"min_lot"`
	MaxLot float64     `json:"max_lot"`
	SLPips float64     `json:"sl_pips"`
	TPPips float64     `json:"tp_pips"`
}

const (
	suggestedMinLot = 0.05
	suggestedMaxLot = 0.10
	suggestedSL     = 30
	suggestedTP     = 60
)

func signals(r Report) []Signal {
	var out []Signal

	switch r.Trend {
	case Uptrend:
		out = append(out, Signal{KindBuy, "Strong bullish signal: price above both moving averages"})
	case Downtrend:
		out = append(out, Signal{KindSell, "Strong bearish signal: price below both moving averages"})
	default:
		out = append(out, Signal{KindWarning, "Mixed signal: wait for confirmation"})
	}

	switch {
	case r.RSI > Overbought:
		out = append(out, Signal{KindWarning, fmt.Sprintf("Overbought (RSI %.0f): pullback possible", r.RSI)})
	case r.RSI < Oversold:
		out = append(out, Signal{KindWarning, fmt.Sprintf("Oversold (RSI %.0f): bounce possible", r.RSI)})
	default:
		out = append(out, Signal{KindBuy, fmt.Sprintf("RSI neutral (%.0f): healthy zone", r.RSI)})
	}
	return out
}

func guide(r Report) ([]Step, *Suggestion) {
	ticket := fmt.Sprintf("Step 4: Suggested lot %.2f-%.2f | SL: %d pips | TP: %d pips",
		suggestedMinLot, suggestedMaxLot, suggestedSL, suggestedTP)

	switch {
	case r.Trend == Uptrend && r.RSI >= 40 && r.RSI < Overbought:
		return []Step{
			{KindAction, "BUY OPPORTUNITY DETECTED"},
			{KindInfo, "Step 1: Uptrend confirmed"},
			{KindInfo, fmt.Sprintf("Step 2: RSI at %.0f (good for entry)", r.RSI)},
			{KindAction, "Step 3: Consider a BUY position"},
			{KindInfo, ticket},
		}, suggest(market.Long)

	case r.Trend == Downtrend && r.RSI > Oversold && r.RSI <= 60:
		return []Step{
			{KindAction, "SELL OPPORTUNITY DETECTED"},
			{KindInfo, "Step 1: Downtrend confirmed"},
			{KindInfo, fmt.Sprintf("Step 2: RSI at %.0f (good for entry)", r.RSI)},
			{KindAction, "Step 3: Consider a SELL position"},
			{KindInfo, ticket},
		}, suggest(market.Short)

	case r.RSI > Overbought:
		return []Step{
			{KindWarning, "MARKET OVERBOUGHT"},
			{KindInfo, "Step 1: Wait for RSI to drop below 70"},
			{KindInfo, "Step 2: Do not open BUY positions now"},
			{KindInfo, "Step 3: Consider closing open long positions"},
		}, nil

	case r.RSI < Oversold:
		return []Step{
			{KindWarning, "MARKET OVERSOLD"},
			{KindInfo, "Step 1: Wait for RSI to rise above 30"},
			{KindInfo, "Step 2: Do not open SELL positions now"},
			{KindInfo, "Step 3: Get ready for a possible bullish bounce"},
		}, nil

	default:
		return []Step{
			{KindWarning, "OBSERVATION MODE"},
			{KindInfo, "Step 1: Signals are not clearly aligned"},
			{KindInfo, "Step 2: Wait for a better setup"},
			{KindInfo, "Step 3: Patience is key in trading"},
		}, nil
	}
}

func suggest(side market.Side) *Suggestion {
	return &Suggestion{
		Side:   side,
		MinLot: suggestedMinLot,
		MaxLot: suggestedMaxLot,
		SLPips: suggestedSL,
		TPPips: suggestedTP,
	}
}
