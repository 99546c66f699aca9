package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000.0, cfg.Account.StartingBalance)
	assert.Len(t, cfg.Instruments, 4)

	p, err := cfg.Refresh.ParsePriceInterval()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, p)

	b, err := cfg.Refresh.ParseBalanceInterval()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, b)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
account:
  starting_balance: 25000
instruments:
  - symbol: AAPL
    initial_price: 100
  - symbol: GOOG
    initial_price: 200
  - symbol: MSFT
    initial_price: 150
  - symbol: AWS
    initial_price: 60
refresh:
  price_interval: 1s
  balance_interval: 2s
snapshot:
  path: ./state.json
journal:
  type: sqlite
  db_path: ./trades.db
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25000.0, cfg.Account.StartingBalance)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "./trades.db", cfg.Journal.DBPath)

	listings := cfg.Listings()
	require.Len(t, listings, 4)
	assert.Equal(t, "AAPL", listings[0].Symbol)
	assert.Equal(t, "100", listings[0].InitialPrice.String())
}

func TestLoadFromJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"account": {"starting_balance": 10000},
		"instruments": [
			{"symbol": "AAPL", "initial_price": 100},
			{"symbol": "GOOG", "initial_price": 200},
			{"symbol": "MSFT", "initial_price": 150},
			{"symbol": "AWS", "initial_price": 60}
		],
		"refresh": {"price_interval": "5s", "balance_interval": "10s"},
		"snapshot": {"path": "./state.json"},
		"journal": {"type": "none"}
	}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Journal.Type)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero balance", func(c *Config) { c.Account.StartingBalance = 0 }},
		{"three instruments", func(c *Config) { c.Instruments = c.Instruments[:3] }},
		{"duplicate symbol", func(c *Config) { c.Instruments[1].Symbol = "AAPL" }},
		{"empty symbol", func(c *Config) { c.Instruments[0].Symbol = "" }},
		{"free instrument", func(c *Config) { c.Instruments[2].InitialPrice = 0 }},
		{"bad price interval", func(c *Config) { c.Refresh.PriceInterval = "soon" }},
		{"zero price interval", func(c *Config) { c.Refresh.PriceInterval = "0s" }},
		{"negative price interval", func(c *Config) { c.Refresh.PriceInterval = "-5s" }},
		{"bad balance interval", func(c *Config) { c.Refresh.BalanceInterval = "" }},
		{"zero balance interval", func(c *Config) { c.Refresh.BalanceInterval = "0s" }},
		{"negative balance interval", func(c *Config) { c.Refresh.BalanceInterval = "-10s" }},
		{"no snapshot path", func(c *Config) { c.Snapshot.Path = "" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "kafka" }},
		{"csv without file", func(c *Config) { c.Journal.Type = "csv"; c.Journal.TradesFile = "" }},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(dir, name)

		cfg := Default()
		cfg.Account.StartingBalance = 31337
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 31337.0, got.Account.StartingBalance, name)
	}
}
