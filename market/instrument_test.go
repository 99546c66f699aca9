package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a canned sequence of multipliers.
type fixedSource struct {
	ms []float64
	i  int
}

func (s *fixedSource) Multiplier() float64 {
	m := s.ms[s.i%len(s.ms)]
	s.i++
	return m
}

func newTestInstrument(t *testing.T, symbol string, initial float64) *Instrument {
	t.Helper()
	in, err := NewInstrument(symbol, decimal.NewFromFloat(initial))
	require.NoError(t, err)
	return in
}

func TestNewInstrument(t *testing.T) {
	in := newTestInstrument(t, "AAPL", 100)

	assert.Equal(t, "AAPL", in.Symbol())
	assert.True(t, in.CurrentPrice().Equal(decimal.NewFromInt(100)))
	assert.Len(t, in.History(), 1)
	assert.True(t, in.History()[0].Equal(in.InitialPrice()))
}

func TestNewInstrumentRejectsBadInput(t *testing.T) {
	_, err := NewInstrument("", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewInstrument("AAPL", decimal.Zero)
	assert.Error(t, err)

	_, err = NewInstrument("AAPL", decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestAdvanceAppendsRoundedPrice(t *testing.T) {
	in := newTestInstrument(t, "MSFT", 150)

	tk := in.Advance(&fixedSource{ms: []float64{1.1}})

	assert.Equal(t, "165", tk.Price.String())
	assert.Equal(t, "150", tk.Prev.String())
	assert.Equal(t, 1, tk.Direction())
	assert.True(t, tk.Up())

	// 165 * 0.937 = 154.605 -> 154.61 (half away from zero)
	tk = in.Advance(&fixedSource{ms: []float64{0.937}})
	assert.Equal(t, "154.61", tk.Price.String())
	assert.Equal(t, -1, tk.Direction())
	assert.True(t, tk.Down())

	assert.Len(t, in.History(), 3)
	assert.True(t, in.CurrentPrice().Equal(tk.Price))
}

func TestAdvanceFlatTick(t *testing.T) {
	in := newTestInstrument(t, "GOOG", 200)

	tk := in.Advance(&fixedSource{ms: []float64{1.0}})

	assert.Equal(t, 0, tk.Direction())
	assert.False(t, tk.Up())
	assert.False(t, tk.Down())
}

func TestHistoryIsACopy(t *testing.T) {
	in := newTestInstrument(t, "AWS", 60)
	in.Advance(&fixedSource{ms: []float64{1.05}})

	h := in.History()
	h[0] = decimal.NewFromInt(999)

	assert.True(t, in.History()[0].Equal(decimal.NewFromInt(60)))
}

func TestProfitRate(t *testing.T) {
	tests := []struct {
		name       string
		multiplier float64
		want       string
	}{
		{"flat", 1.0, "0"},
		{"up ten percent", 1.1, "10"},
		{"down ten percent", 0.9, "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInstrument(t, "AAPL", 100)
			in.Advance(&fixedSource{ms: []float64{tt.multiplier}})
			assert.Equal(t, tt.want, in.ProfitRate().String())
		})
	}
}

func TestProfitRateCompounds(t *testing.T) {
	in := newTestInstrument(t, "MSFT", 150)

	// 150 -> 165 -> 181.5: +21% relative to the initial price.
	src := &fixedSource{ms: []float64{1.1}}
	in.Advance(src)
	in.Advance(src)

	assert.Equal(t, "21", in.ProfitRate().String())
}

func TestUniformWalkBounds(t *testing.T) {
	w := NewUniformWalk(42)
	for i := 0; i < 10000; i++ {
		m := w.Multiplier()
		if m < 0.9 || m >= 1.1 {
			t.Fatalf("multiplier out of range: %f", m)
		}
	}
}

func TestUniformWalkDeterministicPerSeed(t *testing.T) {
	a, b := NewUniformWalk(7), NewUniformWalk(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Multiplier(), b.Multiplier())
	}
}
