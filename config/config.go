package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/example/stocksim/ledger"
)

// Config represents the complete sandbox configuration.
type Config struct {
	Account     AccountConfig      `json:"account" yaml:"account"`
	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
	Refresh     RefreshConfig      `json:"refresh" yaml:"refresh"`
	Snapshot    SnapshotConfig     `json:"snapshot" yaml:"snapshot"`
	Journal     JournalConfig      `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
}

// InstrumentConfig defines one tradable instrument.
type InstrumentConfig struct {
	Symbol       string  `json:"symbol" yaml:"symbol"`
	InitialPrice float64 `json:"initial_price" yaml:"initial_price"`
}

// RefreshConfig sets the intervals at which the driver advances prices and
// redraws the balance view. The engine itself never sees these; they are
// scheduler policy.
type RefreshConfig struct {
	PriceInterval   string `json:"price_interval" yaml:"price_interval"`
	BalanceInterval string `json:"balance_interval" yaml:"balance_interval"`
}

func (r RefreshConfig) ParsePriceInterval() (time.Duration, error) {
	return time.ParseDuration(r.PriceInterval)
}

func (r RefreshConfig) ParseBalanceInterval() (time.Duration, error) {
	return time.ParseDuration(r.BalanceInterval)
}

// SnapshotConfig locates the persisted account state.
type SnapshotConfig struct {
	Path string `json:"path" yaml:"path"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.StartingBalance <= 0 {
		return fmt.Errorf("account.starting_balance must be positive")
	}
	if len(c.Instruments) != 4 {
		return fmt.Errorf("exactly 4 instruments are required, got %d", len(c.Instruments))
	}
	seen := map[string]bool{}
	for _, in := range c.Instruments {
		if in.Symbol == "" {
			return fmt.Errorf("instrument symbol is required")
		}
		if seen[in.Symbol] {
			return fmt.Errorf("duplicate instrument symbol: %s", in.Symbol)
		}
		seen[in.Symbol] = true
		if in.InitialPrice <= 0 {
			return fmt.Errorf("instrument %s: initial_price must be positive", in.Symbol)
		}
	}
	// Intervals feed time.NewTicker, which panics on non-positive
	// durations, so parsing alone is not enough.
	if d, err := c.Refresh.ParsePriceInterval(); err != nil {
		return fmt.Errorf("refresh.price_interval: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("refresh.price_interval must be positive, got %s", d)
	}
	if d, err := c.Refresh.ParseBalanceInterval(); err != nil {
		return fmt.Errorf("refresh.balance_interval: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("refresh.balance_interval must be positive, got %s", d)
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Listings converts the configured instruments into ledger listings.
func (c *Config) Listings() []ledger.Listing {
	out := make([]ledger.Listing, 0, len(c.Instruments))
	for _, in := range c.Instruments {
		out = append(out, ledger.Listing{
			Symbol:       in.Symbol,
			InitialPrice: decimal.NewFromFloat(in.InitialPrice),
		})
	}
	return out
}

// StartingBalance returns the configured starting balance as a decimal.
func (c *Config) StartingBalance() decimal.Decimal {
	return decimal.NewFromFloat(c.Account.StartingBalance)
}

// Default returns a configuration with sensible defaults: the classic four
// instruments, 10000 starting balance, 5s price ticks and 10s balance view
// refresh.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			StartingBalance: 10000,
		},
		Instruments: []InstrumentConfig{
			{Symbol: "AAPL", InitialPrice: 100},
			{Symbol: "GOOG", InitialPrice: 200},
			{Symbol: "MSFT", InitialPrice: 150},
			{Symbol: "AWS", InitialPrice: 60},
		},
		Refresh: RefreshConfig{
			PriceInterval:   "5s",
			BalanceInterval: "10s",
		},
		Snapshot: SnapshotConfig{
			Path: "./user_data.json",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
		},
	}
}
