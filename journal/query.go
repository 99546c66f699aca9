// journal/query.go
package journal

import (
	"database/sql"
	"fmt"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, time, side, symbol, quantity, price, amount, balance
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := row.Scan(
		&rec.TradeID,
		&rec.Time,
		&rec.Side,
		&rec.Symbol,
		&rec.Quantity,
		&rec.Price,
		&rec.Amount,
		&rec.Balance,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListRecent returns up to limit trades, most recent first. ULID primary
// keys make "most recent" a plain ORDER BY.
func (j *SQLite) ListRecent(limit int) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, side, symbol, quantity, price, amount, balance
		FROM trades
		ORDER BY trade_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListBySymbol returns every trade for one symbol, oldest first.
func (j *SQLite) ListBySymbol(symbol string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, side, symbol, quantity, price, amount, balance
		FROM trades
		WHERE symbol = ?
		ORDER BY trade_id ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.Time,
			&rec.Side,
			&rec.Symbol,
			&rec.Quantity,
			&rec.Price,
			&rec.Amount,
			&rec.Balance,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
