package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `session_id, position_id, side, lot_size, entry_price, exit_price, stop_loss, take_profit, pips, profit, open_time, close_time, reason`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (TradeRecord, error) {
	var rec TradeRecord
	err := s.Scan(
		&rec.SessionID,
		&rec.PositionID,
		&rec.Side,
		&rec.LotSize,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.Pips,
		&rec.Profit,
		&rec.OpenTime,
		&rec.CloseTime,
		&rec.Reason,
	)
	return rec, err
}

// GetTrade returns a single trade record of a session.
func (j *SQLite) GetTrade(sessionID string, positionID int64) (TradeRecord, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+`
		FROM trades
		WHERE session_id = ? AND position_id = ?`, sessionID, positionID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %s/%d not found", sessionID, positionID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`SELECT `+tradeColumns+`
		FROM trades
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListTradesBySession returns a session's trades in close order.
func (j *SQLite) ListTradesBySession(sessionID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`SELECT `+tradeColumns+`
		FROM trades
		WHERE session_id = ?
		ORDER BY close_time ASC, position_id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

func collectTrades(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityBySession returns a session's equity curve, oldest first.
func (j *SQLite) ListEquityBySession(sessionID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, time, balance, equity, open_pl, used_margin, free_margin
		FROM equity
		WHERE session_id = ?
		ORDER BY time ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(
			&e.SessionID,
			&e.Time,
			&e.Balance,
			&e.Equity,
			&e.OpenPL,
			&e.UsedMargin,
			&e.FreeMargin,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
