package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(session_id, position_id, side, lot_size, entry_price, exit_price, stop_loss, take_profit, pips, profit, open_time, close_time, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.PositionID, t.Side, t.LotSize, t.EntryPrice, t.ExitPrice,
		t.StopLoss, t.TakeProfit, t.Pips, t.Profit, t.OpenTime, t.CloseTime, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(session_id, time, balance, equity, open_pl, used_margin, free_margin)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Time, e.Balance, e.Equity, e.OpenPL, e.UsedMargin, e.FreeMargin,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
