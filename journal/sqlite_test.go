package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func sampleTrade(session string, id int64, closeT time.Time) TradeRecord {
	return TradeRecord{
		SessionID:  session,
		PositionID: id,
		Side:       "BUY",
		LotSize:    0.1,
		EntryPrice: 4000,
		ExitPrice:  4000.5,
		StopLoss:   3999.7,
		TakeProfit: 4000.6,
		Pips:       50,
		Profit:     500,
		OpenTime:   closeT.Add(-time.Minute),
		CloseTime:  closeT,
		Reason:     "Manual",
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','equity')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["equity"])
}

func TestSQLiteRecordEquity(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		SessionID:  "S1",
		Time:       ts,
		Balance:    10000,
		Equity:     10250.5,
		OpenPL:     250.5,
		UsedMargin: 1000,
		FreeMargin: 9250.5,
	}))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var balance, equity, freeMargin float64
	err = db.QueryRow(`SELECT balance, equity, free_margin FROM equity WHERE session_id = ?`, "S1").
		Scan(&balance, &equity, &freeMargin)
	require.NoError(t, err)

	assert.InDelta(t, 10000, balance, 1e-9)
	assert.InDelta(t, 10250.5, equity, 1e-9)
	assert.InDelta(t, 9250.5, freeMargin, 1e-9)
}

func TestSQLiteDuplicateTradeRejected(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := sampleTrade("S1", 1, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, j.RecordTrade(rec))
	assert.Error(t, j.RecordTrade(rec))

	// same position id in another session is fine
	rec.SessionID = "S2"
	assert.NoError(t, j.RecordTrade(rec))
}
