package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stocksim",
	Short: "A single-user simulated stock-trading sandbox",
	Long: `Stocksim is a paper-trading sandbox with a fixed set of instruments
whose prices follow a bounded random walk.

It provides tools for:
  - Trading interactively against periodically refreshed prices
  - Persisting account state to a snapshot file between sessions
  - Journaling every executed trade to CSV or SQLite
  - Running scripted demo sessions`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
