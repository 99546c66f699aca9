// market/tick.go
package market

import "github.com/shopspring/decimal"

// Tick is the result of advancing an instrument's price once. Prev is the
// price that was current immediately before the advance.
type Tick struct {
	Symbol string
	Price  decimal.Decimal
	Prev   decimal.Decimal
}

// Direction reports the trend of the tick against the pre-advance price:
// +1 up, -1 down, 0 flat.
func (t Tick) Direction() int {
	return t.Price.Cmp(t.Prev)
}

func (t Tick) Up() bool   { return t.Direction() > 0 }
func (t Tick) Down() bool { return t.Direction() < 0 }
