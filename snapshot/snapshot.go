// snapshot/snapshot.go
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/example/stocksim/ledger"
)

// DefaultBalance is the starting balance of a fresh account when no usable
// snapshot exists.
const DefaultBalance = 10000

// ErrMalformed marks a snapshot file that parsed as JSON but is missing one
// of the required top-level keys.
var ErrMalformed = errors.New("snapshot missing required key")

// State is the persisted subset of account state. Price history is
// deliberately excluded: instruments restart from their initial prices on
// every load.
type State struct {
	Balance  float64             `json:"balance"`
	Holdings map[string]int      `json:"holdings"`
	History  map[string][]string `json:"transaction_history"`
}

// Default is the fresh-account state used when no snapshot can be loaded.
func Default() State {
	return State{
		Balance:  DefaultBalance,
		Holdings: map[string]int{},
		History:  map[string][]string{},
	}
}

// Capture extracts the persistable state from an account.
func Capture(a *ledger.Account) State {
	return State{
		Balance:  a.Balance().InexactFloat64(),
		Holdings: a.Holdings(),
		History:  a.TransactionHistory(),
	}
}

// Restored converts the state into the form ledger.Rehydrate consumes.
func (s State) Restored() ledger.RestoredState {
	return ledger.RestoredState{
		Balance:  decimal.NewFromFloat(s.Balance),
		Holdings: s.Holdings,
		History:  s.History,
	}
}

// Load reads and validates a snapshot file. All three top-level keys must be
// present; absent maps inside them are fine.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read snapshot: %w", err)
	}

	// Decode through pointers so a present-but-empty map is distinguishable
	// from a missing key.
	var raw struct {
		Balance  *float64             `json:"balance"`
		Holdings *map[string]int      `json:"holdings"`
		History  *map[string][]string `json:"transaction_history"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	switch {
	case raw.Balance == nil:
		return State{}, fmt.Errorf("snapshot %s: %w: balance", path, ErrMalformed)
	case raw.Holdings == nil:
		return State{}, fmt.Errorf("snapshot %s: %w: holdings", path, ErrMalformed)
	case raw.History == nil:
		return State{}, fmt.Errorf("snapshot %s: %w: transaction_history", path, ErrMalformed)
	}

	s := State{
		Balance:  *raw.Balance,
		Holdings: *raw.Holdings,
		History:  *raw.History,
	}
	if s.Holdings == nil {
		s.Holdings = map[string]int{}
	}
	if s.History == nil {
		s.History = map[string][]string{}
	}
	return s, nil
}

// Restore loads a snapshot, substituting the default fresh state when the
// file is missing, unreadable or malformed. The returned State is always
// usable; a non-nil error is a recoverable warning describing why the
// default was used.
func Restore(path string) (State, error) {
	s, err := Load(path)
	if err != nil {
		return Default(), fmt.Errorf("starting with a fresh account: %w", err)
	}
	return s, nil
}

// Save writes the full snapshot to path, replacing whatever was there.
func Save(path string, s State) error {
	if s.Holdings == nil {
		s.Holdings = map[string]int{}
	}
	if s.History == nil {
		s.History = map[string][]string{}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Write to a temp file in the same directory and rename over the
	// target, so a crash mid-write never leaves a torn snapshot behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
