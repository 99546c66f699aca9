package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeLogAppendBelowCap(t *testing.T) {
	l := newTradeLog(3)

	l.append("a")
	l.append("b")

	assert.Equal(t, []string{"a", "b"}, l.records())
	assert.Equal(t, 2, l.len())
}

func TestTradeLogEvictsOldestFirst(t *testing.T) {
	l := newTradeLog(3)

	for _, r := range []string{"a", "b", "c", "d", "e"} {
		l.append(r)
	}

	assert.Equal(t, []string{"c", "d", "e"}, l.records())
}

func TestTradeLogNeverExceedsCap(t *testing.T) {
	l := newTradeLog(15)

	for i := 0; i < 100; i++ {
		l.append(fmt.Sprintf("rec-%d", i))
		require.LessOrEqual(t, l.len(), 15)
	}

	recs := l.records()
	assert.Equal(t, "rec-85", recs[0])
	assert.Equal(t, "rec-99", recs[14])
}

func TestTradeLogRestore(t *testing.T) {
	l := newTradeLog(3)
	l.append("old")

	l.restore([]string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"b", "c", "d"}, l.records())

	l.restore(nil)
	assert.Empty(t, l.records())
}

func TestTradeLogRecordsIsACopy(t *testing.T) {
	l := newTradeLog(3)
	l.append("a")

	recs := l.records()
	recs[0] = "mutated"

	assert.Equal(t, []string{"a"}, l.records())
}
