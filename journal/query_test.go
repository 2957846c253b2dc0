package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	closeT := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	want := sampleTrade("01HSESSION", 7, closeT)
	want.Side = "SELL"
	want.Profit = -300
	want.Pips = -30
	want.Reason = "StopLoss"

	require.NoError(t, j.RecordTrade(want))

	got, err := j.GetTrade("01HSESSION", 7)
	require.NoError(t, err)

	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.PositionID, got.PositionID)
	assert.Equal(t, want.Side, got.Side)
	assert.InDelta(t, want.LotSize, got.LotSize, 1e-9)
	assert.InDelta(t, want.EntryPrice, got.EntryPrice, 1e-9)
	assert.InDelta(t, want.ExitPrice, got.ExitPrice, 1e-9)
	assert.InDelta(t, want.StopLoss, got.StopLoss, 1e-9)
	assert.InDelta(t, want.TakeProfit, got.TakeProfit, 1e-9)
	assert.InDelta(t, want.Pips, got.Pips, 1e-9)
	assert.InDelta(t, want.Profit, got.Profit, 1e-9)
	assert.True(t, got.OpenTime.Equal(want.OpenTime))
	assert.True(t, got.CloseTime.Equal(want.CloseTime))
	assert.Equal(t, want.Reason, got.Reason)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nope", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	day := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("S", 1, day.Add(-time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("S", 2, day.Add(9*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("S", 3, day.Add(2*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("S", 4, day.Add(24*time.Hour))))

	got, err := j.ListTradesClosedBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].PositionID)
	assert.Equal(t, int64(2), got[1].PositionID)
}

func TestListTradesBySession(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ts := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("A", 1, ts)))
	require.NoError(t, j.RecordTrade(sampleTrade("B", 1, ts)))
	require.NoError(t, j.RecordTrade(sampleTrade("A", 2, ts.Add(time.Minute))))

	got, err := j.ListTradesBySession("A")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].PositionID)
	assert.Equal(t, int64(2), got[1].PositionID)

	none, err := j.ListTradesBySession("C")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListEquityBySession(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ts := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordEquity(EquitySnapshot{SessionID: "A", Time: ts.Add(15 * time.Second), Balance: 10100, Equity: 10100, FreeMargin: 10100}))
	require.NoError(t, j.RecordEquity(EquitySnapshot{SessionID: "A", Time: ts, Balance: 10000, Equity: 10000, FreeMargin: 10000}))
	require.NoError(t, j.RecordEquity(EquitySnapshot{SessionID: "B", Time: ts, Balance: 1, Equity: 1}))

	got, err := j.ListEquityBySession("A")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 10000, got[0].Balance, 1e-9)
	assert.InDelta(t, 10100, got[1].Balance, 1e-9)
	assert.True(t, got[0].Time.Equal(ts))
}
