// market/instrument.go
package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Instrument is a simulated tradable asset: a symbol plus the full sequence
// of prices it has taken since creation. The history is append-only; the
// first element is always the initial price and the last element is the
// current price.
type Instrument struct {
	symbol  string
	initial decimal.Decimal
	history []decimal.Decimal
}

func NewInstrument(symbol string, initial decimal.Decimal) (*Instrument, error) {
	if symbol == "" {
		return nil, fmt.Errorf("new instrument: symbol is required")
	}
	if !initial.IsPositive() {
		return nil, fmt.Errorf("new instrument %s: initial price must be positive, got %s", symbol, initial)
	}
	initial = initial.Round(2)
	return &Instrument{
		symbol:  symbol,
		initial: initial,
		history: []decimal.Decimal{initial},
	}, nil
}

func (in *Instrument) Symbol() string { return in.symbol }

// InitialPrice is the fixed baseline used for the profit rate. It never
// changes after creation.
func (in *Instrument) InitialPrice() decimal.Decimal { return in.initial }

// CurrentPrice returns the most recent price.
func (in *Instrument) CurrentPrice() decimal.Decimal {
	return in.history[len(in.history)-1]
}

// History returns a copy of the full price sequence, oldest first.
func (in *Instrument) History() []decimal.Decimal {
	out := make([]decimal.Decimal, len(in.history))
	copy(out, in.history)
	return out
}

// Advance draws one multiplier from src, applies it to the current price,
// rounds to 2 decimals and appends the result to the history. The previous
// price is captured before the append so the returned Tick can report the
// trend without re-reading the history.
func (in *Instrument) Advance(src Source) Tick {
	prev := in.CurrentPrice()
	next := prev.Mul(decimal.NewFromFloat(src.Multiplier())).Round(2)
	in.history = append(in.history, next)
	return Tick{Symbol: in.symbol, Price: next, Prev: prev}
}

// ProfitRate is the percentage change of the current price relative to the
// initial price, rounded to 2 decimals. It is a pure price metric and is
// defined whether or not anything is held.
func (in *Instrument) ProfitRate() decimal.Decimal {
	return in.CurrentPrice().Sub(in.initial).Div(in.initial).Mul(hundred).Round(2)
}

// Quote is the caller-facing view of one instrument.
type Quote struct {
	Symbol     string
	Price      decimal.Decimal
	ProfitRate decimal.Decimal
}

func (in *Instrument) Quote() Quote {
	return Quote{
		Symbol:     in.symbol,
		Price:      in.CurrentPrice(),
		ProfitRate: in.ProfitRate(),
	}
}
