package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stocksim/internal/id"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func testRecord(side, symbol string, qty int, price, balance float64) TradeRecord {
	return TradeRecord{
		TradeID:  id.New(),
		Time:     time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Side:     side,
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Amount:   price * float64(qty),
		Balance:  balance,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := testRecord("BUY", "AAPL", 10, 100, 9000)
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade(rec.TradeID)
	require.NoError(t, err)

	assert.Equal(t, rec.TradeID, got.TradeID)
	assert.Equal(t, "BUY", got.Side)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, 100.0, got.Price)
	assert.Equal(t, 1000.0, got.Amount)
	assert.Equal(t, 9000.0, got.Balance)
	assert.True(t, got.Time.Equal(rec.Time))
}

func TestSQLiteGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetTrade("missing")
	assert.Error(t, err)
}

func TestSQLiteListRecent(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	first := testRecord("BUY", "AAPL", 1, 100, 9900)
	second := testRecord("BUY", "GOOG", 1, 200, 9700)
	third := testRecord("SELL", "AAPL", 1, 105, 9805)
	for _, rec := range []TradeRecord{first, second, third} {
		require.NoError(t, j.RecordTrade(rec))
	}

	got, err := j.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first, by ULID order.
	assert.Equal(t, third.TradeID, got[0].TradeID)
	assert.Equal(t, second.TradeID, got[1].TradeID)
}

func TestSQLiteListBySymbol(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	a := testRecord("BUY", "AAPL", 1, 100, 9900)
	g := testRecord("BUY", "GOOG", 2, 200, 9500)
	b := testRecord("SELL", "AAPL", 1, 110, 9610)
	for _, rec := range []TradeRecord{a, g, b} {
		require.NoError(t, j.RecordTrade(rec))
	}

	got, err := j.ListBySymbol("AAPL")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.TradeID, got[0].TradeID)
	assert.Equal(t, b.TradeID, got[1].TradeID)

	got, err = j.ListBySymbol("MSFT")
	require.NoError(t, err)
	assert.Empty(t, got)
}
