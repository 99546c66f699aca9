package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/stocksim/internal/id"
	"github.com/example/stocksim/journal"
	"github.com/example/stocksim/ledger"
	"github.com/example/stocksim/market"
	"github.com/example/stocksim/snapshot"
)

// session serializes all account access behind a mutex: the price ticker and
// the command loop run on different goroutines, and the ledger itself takes
// no locks.
type session struct {
	mu   sync.Mutex
	acct *ledger.Account
	j    journal.Journal
}

func newSession(acct *ledger.Account, j journal.Journal) *session {
	if j == nil {
		j = journal.Nop{}
	}
	return &session{acct: acct, j: j}
}

func (s *session) buy(symbol string, qty int) (ledger.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, err := s.acct.Buy(symbol, qty)
	if err != nil {
		return exec, err
	}
	s.record(exec)
	return exec, nil
}

func (s *session) sell(symbol string, qty int) (ledger.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, err := s.acct.Sell(symbol, qty)
	if err != nil {
		return exec, err
	}
	s.record(exec)
	return exec, nil
}

func (s *session) record(exec ledger.Execution) {
	err := s.j.RecordTrade(journal.TradeRecord{
		TradeID:  id.New(),
		Time:     time.Now().UTC(),
		Side:     string(exec.Side),
		Symbol:   exec.Symbol,
		Quantity: exec.Quantity,
		Price:    exec.Price.InexactFloat64(),
		Amount:   exec.Amount.InexactFloat64(),
		Balance:  exec.Balance.InexactFloat64(),
	})
	if err != nil {
		fmt.Printf("warning: journal write failed: %v\n", err)
	}
}

func (s *session) advancePrices() []market.Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.AdvancePrices()
}

func (s *session) quotes() []market.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.Quotes()
}

func (s *session) balanceView() (balance, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.Balance().StringFixed(2), s.acct.PortfolioValue().StringFixed(2)
}

func (s *session) holdings() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.Holdings()
}

func (s *session) history() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.TransactionHistory()
}

func (s *session) historyFor(symbol string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct.HistoryFor(symbol)
}

func (s *session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acct.Reset()
}

func (s *session) capture() snapshot.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Capture(s.acct)
}
