package sim

import (
	"time"

	"github.com/rustyeddy/fxtrainer/market"
)

type CloseReason string

const (
	StopLoss   CloseReason = "StopLoss"
	TakeProfit CloseReason = "TakeProfit"
	Manual     CloseReason = "Manual"
)

type Position struct {
	ID              int64       `json:"id"`
	Side            market.Side `json:"side"`
	EntryPrice      float64     `json:"entry_price"`
	LotSize         float64     `json:"lot_size"`
	StopLossPrice   float64     `json:"stop_loss_price"`
	TakeProfitPrice float64     `json:"take_profit_price"`
	OpenTime        time.Time   `json:"open_time"`
	CurrentPrice    float64     `json:"current_price"`
	Pips            float64     `json:"pips"`
	Profit          float64     `json:"profit"`
}

// StopLossPips is the stop distance from entry in pips.
func (p Position) StopLossPips(pipValue float64) float64 {
	return market.Round2(abs(p.EntryPrice-p.StopLossPrice) / pipValue)
}

// TakeProfitPips is the target distance from entry in pips.
func (p Position) TakeProfitPips(pipValue float64) float64 {
	return market.Round2(abs(p.TakeProfitPrice-p.EntryPrice) / pipValue)
}

// ClosedTrade is an immutable record of a position at close time.
type ClosedTrade struct {
	Position
	ExitPrice float64     `json:"exit_price"`
	CloseTime time.Time   `json:"close_time"`
	Reason    CloseReason `json:"reason"`
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
