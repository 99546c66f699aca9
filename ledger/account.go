// ledger/account.go
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/stocksim/market"
)

// HistoryCap is the per-symbol bound on retained trade records. The 16th
// record evicts the oldest.
const HistoryCap = 15

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Listing defines one instrument available to an account: its symbol and the
// fixed initial price its history restarts from.
type Listing struct {
	Symbol       string
	InitialPrice decimal.Decimal
}

// Params are the fixed parameters of an account. They survive Reset: a reset
// account returns to StartingBalance with the same listings and source.
type Params struct {
	StartingBalance decimal.Decimal
	Listings        []Listing
	Source          market.Source
}

func (p Params) validate() error {
	if p.StartingBalance.IsNegative() {
		return fmt.Errorf("ledger: starting balance must not be negative, got %s", p.StartingBalance)
	}
	if len(p.Listings) == 0 {
		return fmt.Errorf("ledger: at least one listing is required")
	}
	if p.Source == nil {
		return fmt.Errorf("ledger: price source is required")
	}
	seen := make(map[string]bool, len(p.Listings))
	for _, l := range p.Listings {
		if seen[l.Symbol] {
			return fmt.Errorf("ledger: duplicate listing %q", l.Symbol)
		}
		seen[l.Symbol] = true
	}
	return nil
}

// RestoredState is previously persisted account state used to rehydrate an
// account. Price history is never part of it; instruments always restart
// from their listed initial prices.
type RestoredState struct {
	Balance  decimal.Decimal
	Holdings map[string]int
	History  map[string][]string
}

// Account owns the cash balance, per-symbol holdings and the bounded
// per-symbol trade log, and executes trades against the current prices of a
// fixed set of instruments.
//
// Every operation is a synchronous check-then-mutate: a declined trade
// leaves no partial effects. The account performs no I/O and owns no timers;
// callers drive price advances and must serialize access externally if they
// run concurrently.
type Account struct {
	params   Params
	balance  decimal.Decimal
	holdings map[string]int
	history  map[string]*tradeLog
	order    []*market.Instrument
	bySymbol map[string]*market.Instrument
}

// New creates a fresh account at the starting balance with empty holdings
// and history.
func New(p Params) (*Account, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	a := &Account{params: p}
	if err := a.init(); err != nil {
		return nil, err
	}
	return a, nil
}

// Rehydrate builds an account from persisted state. Negative balances or
// holdings in the state are rejected; per-symbol history is truncated to the
// most recent HistoryCap records.
func Rehydrate(p Params, s RestoredState) (*Account, error) {
	a, err := New(p)
	if err != nil {
		return nil, err
	}

	if s.Balance.IsNegative() {
		return nil, fmt.Errorf("rehydrate: negative balance %s", s.Balance)
	}
	a.balance = s.Balance.Round(2)

	for sym, qty := range s.Holdings {
		if qty < 0 {
			return nil, fmt.Errorf("rehydrate: negative holding %d for %q", qty, sym)
		}
		a.holdings[sym] = qty
	}
	for sym, recs := range s.History {
		a.log(sym).restore(recs)
	}
	return a, nil
}

func (a *Account) init() error {
	order := make([]*market.Instrument, 0, len(a.params.Listings))
	bySymbol := make(map[string]*market.Instrument, len(a.params.Listings))
	for _, l := range a.params.Listings {
		in, err := market.NewInstrument(l.Symbol, l.InitialPrice)
		if err != nil {
			return err
		}
		order = append(order, in)
		bySymbol[l.Symbol] = in
	}

	a.balance = a.params.StartingBalance.Round(2)
	a.holdings = make(map[string]int)
	a.history = make(map[string]*tradeLog)
	a.order = order
	a.bySymbol = bySymbol
	return nil
}

// Reset atomically replaces all account state: starting balance, empty
// holdings and history, instruments re-seeded at their initial prices.
// It is irreversible; any confirmation step belongs to the caller.
func (a *Account) Reset() {
	// params were validated when the account was built, so init cannot fail
	// here.
	_ = a.init()
}

// Execution describes one completed trade: what was traded, at which price,
// the rounded amount debited or credited, the balance after the trade and
// the record string appended to the bounded log.
type Execution struct {
	Side     Side
	Symbol   string
	Quantity int
	Price    decimal.Decimal
	Amount   decimal.Decimal
	Balance  decimal.Decimal
	Record   string
}

// Buy purchases qty units of symbol at its current price. The trade is
// declined with ErrInsufficientFunds when the rounded cost exceeds the
// balance; declined trades change nothing.
func (a *Account) Buy(symbol string, qty int) (Execution, error) {
	if qty <= 0 {
		return Execution{}, fmt.Errorf("buy %s x%d: %w", symbol, qty, ErrBadQuantity)
	}
	in, ok := a.bySymbol[symbol]
	if !ok {
		return Execution{}, fmt.Errorf("buy %q: %w", symbol, ErrUnknownSymbol)
	}

	price := in.CurrentPrice()
	cost := price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	if cost.GreaterThan(a.balance) {
		return Execution{}, fmt.Errorf("buy %s x%d costs %s with balance %s: %w",
			symbol, qty, cost, a.balance, ErrInsufficientFunds)
	}

	a.holdings[symbol] += qty
	a.balance = a.balance.Sub(cost).Round(2)

	rec := fmt.Sprintf("BUY %s x%d @ %s", symbol, qty, price.StringFixed(2))
	a.log(symbol).append(rec)

	return Execution{
		Side:     SideBuy,
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Amount:   cost,
		Balance:  a.balance,
		Record:   rec,
	}, nil
}

// Sell disposes of qty units of symbol at its current price. The trade is
// declined with ErrInsufficientHoldings when fewer than qty units are held;
// declined trades change nothing.
func (a *Account) Sell(symbol string, qty int) (Execution, error) {
	if qty <= 0 {
		return Execution{}, fmt.Errorf("sell %s x%d: %w", symbol, qty, ErrBadQuantity)
	}
	in, ok := a.bySymbol[symbol]
	if !ok {
		return Execution{}, fmt.Errorf("sell %q: %w", symbol, ErrUnknownSymbol)
	}

	if held := a.holdings[symbol]; held < qty {
		return Execution{}, fmt.Errorf("sell %s x%d with %d held: %w",
			symbol, qty, held, ErrInsufficientHoldings)
	}

	price := in.CurrentPrice()
	proceeds := price.Mul(decimal.NewFromInt(int64(qty))).Round(2)

	a.holdings[symbol] -= qty
	a.balance = a.balance.Add(proceeds).Round(2)

	rec := fmt.Sprintf("SELL %s x%d @ %s", symbol, qty, price.StringFixed(2))
	a.log(symbol).append(rec)

	return Execution{
		Side:     SideSell,
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Amount:   proceeds,
		Balance:  a.balance,
		Record:   rec,
	}, nil
}

// AdvancePrices advances every instrument once, in listing order, and
// returns the resulting ticks. Callers own the schedule; the account never
// advances prices on its own.
func (a *Account) AdvancePrices() []market.Tick {
	ticks := make([]market.Tick, 0, len(a.order))
	for _, in := range a.order {
		ticks = append(ticks, in.Advance(a.params.Source))
	}
	return ticks
}

func (a *Account) Balance() decimal.Decimal { return a.balance }

// Holdings returns a copy of the symbol to quantity mapping. Symbols that
// were never traded are absent; sold-out symbols may remain at zero.
func (a *Account) Holdings() map[string]int {
	out := make(map[string]int, len(a.holdings))
	for sym, qty := range a.holdings {
		out[sym] = qty
	}
	return out
}

// TransactionHistory returns a copy of every symbol's bounded trade log,
// most recent record last.
func (a *Account) TransactionHistory() map[string][]string {
	out := make(map[string][]string, len(a.history))
	for sym, l := range a.history {
		out[sym] = l.records()
	}
	return out
}

// HistoryFor returns the bounded trade log for one symbol, oldest first.
func (a *Account) HistoryFor(symbol string) []string {
	l, ok := a.history[symbol]
	if !ok {
		return nil
	}
	return l.records()
}

// Instruments returns the account's instruments in listing order.
func (a *Account) Instruments() []*market.Instrument {
	out := make([]*market.Instrument, len(a.order))
	copy(out, a.order)
	return out
}

// Instrument returns the instrument listed under symbol.
func (a *Account) Instrument(symbol string) (*market.Instrument, error) {
	in, ok := a.bySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("instrument %q: %w", symbol, ErrUnknownSymbol)
	}
	return in, nil
}

// InstrumentAt returns the instrument at a selector position, validating
// the range so positional callers cannot reach a panic.
func (a *Account) InstrumentAt(i int) (*market.Instrument, error) {
	if i < 0 || i >= len(a.order) {
		return nil, fmt.Errorf("instrument index %d out of range [0,%d)", i, len(a.order))
	}
	return a.order[i], nil
}

// Quotes returns the current quote for every instrument, in listing order.
func (a *Account) Quotes() []market.Quote {
	out := make([]market.Quote, 0, len(a.order))
	for _, in := range a.order {
		out = append(out, in.Quote())
	}
	return out
}

// PortfolioValue is the mark-to-market value of all holdings at current
// prices, rounded to 2 decimals.
func (a *Account) PortfolioValue() decimal.Decimal {
	total := decimal.Zero
	for sym, qty := range a.holdings {
		if qty == 0 {
			continue
		}
		// Rehydrated snapshots may hold symbols no longer listed; they carry
		// no quotable value.
		in, ok := a.bySymbol[sym]
		if !ok {
			continue
		}
		total = total.Add(in.CurrentPrice().Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2)
}

func (a *Account) log(symbol string) *tradeLog {
	l, ok := a.history[symbol]
	if !ok {
		l = newTradeLog(HistoryCap)
		a.history[symbol] = l
	}
	return l
}
