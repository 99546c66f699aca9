// ledger/tradelog.go
package ledger

// tradeLog is a bounded FIFO of trade record strings, most recent last.
// Appending past the cap evicts the oldest entries, so the invariant
// len(entries) <= cap holds after every append, not just eventually.
type tradeLog struct {
	cap     int
	entries []string
}

func newTradeLog(cap int) *tradeLog {
	return &tradeLog{cap: cap}
}

func (l *tradeLog) append(rec string) {
	l.entries = append(l.entries, rec)
	if n := len(l.entries); n > l.cap {
		l.entries = append(l.entries[:0], l.entries[n-l.cap:]...)
	}
}

// restore replaces the log contents with previously persisted records,
// keeping only the most recent cap entries.
func (l *tradeLog) restore(recs []string) {
	l.entries = l.entries[:0]
	if n := len(recs); n > l.cap {
		recs = recs[n-l.cap:]
	}
	l.entries = append(l.entries, recs...)
}

func (l *tradeLog) records() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *tradeLog) len() int { return len(l.entries) }
