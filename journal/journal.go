// Package journal records closed trades and equity snapshots of a trainer
// session. Journals are write-mostly exports; a live session never reads
// them back.
package journal

import "time"

// TradeRecord is one closed position.
type TradeRecord struct {
	SessionID  string    `csv:"session_id" json:"session_id"`
	PositionID int64     `csv:"position_id" json:"position_id"`
	Side       string    `csv:"side" json:"side"`
	LotSize    float64   `csv:"lot_size" json:"lot_size"`
	EntryPrice float64   `csv:"entry_price" json:"entry_price"`
	ExitPrice  float64   `csv:"exit_price" json:"exit_price"`
	StopLoss   float64   `csv:"stop_loss" json:"stop_loss"`
	TakeProfit float64   `csv:"take_profit" json:"take_profit"`
	Pips       float64   `csv:"pips" json:"pips"`
	Profit     float64   `csv:"profit" json:"profit"`
	OpenTime   time.Time `csv:"open_time" json:"open_time"`
	CloseTime  time.Time `csv:"close_time" json:"close_time"`
	Reason     string    `csv:"reason" json:"reason"`
}

// EquitySnapshot is the account state at a point in time.
type EquitySnapshot struct {
	SessionID  string    `csv:"session_id" json:"session_id"`
	Time       time.Time `csv:"time" json:"time"`
	Balance    float64   `csv:"balance" json:"balance"`
	Equity     float64   `csv:"equity" json:"equity"`
	OpenPL     float64   `csv:"open_pl" json:"open_pl"`
	UsedMargin float64   `csv:"used_margin" json:"used_margin"`
	FreeMargin float64   `csv:"free_margin" json:"free_margin"`
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
