// journal/journal.go
package journal

import "time"

// TradeRecord is one executed trade as persisted by a journal backend.
// TradeID is a ULID, so records sort chronologically by primary key.
type TradeRecord struct {
	TradeID  string
	Time     time.Time
	Side     string
	Symbol   string
	Quantity int
	Price    float64
	Amount   float64
	Balance  float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}

// Nop discards everything. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error { return nil }
func (Nop) Close() error                  { return nil }
