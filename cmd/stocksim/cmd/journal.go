package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/stocksim/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query trade journal data",
	Long: `Query and display trade journal records from a SQLite database.

Subcommands:
  recent  - List the most recent trades
  symbol  - List every trade for one symbol
  trade   - Get details of a specific trade by ID

Examples:
  stocksim journal recent -n 20
  stocksim journal symbol AAPL
  stocksim journal trade <trade-id>`,
}

var journalRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent trades",
	Args:  cobra.NoArgs,
	RunE:  runJournalRecent,
}

var journalSymbolCmd = &cobra.Command{
	Use:   "symbol <SYM>",
	Short: "List every trade for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSymbol,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRecentCmd)
	journalCmd.AddCommand(journalSymbolCmd)
	journalCmd.AddCommand(journalTradeCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./stocksim.sqlite", "path to SQLite journal DB")
	journalRecentCmd.Flags().IntVarP(&journalLimit, "limit", "n", 10, "maximum number of trades to list")
}

func openJournalDB() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", journalDBPath, err)
	}
	return j, nil
}

func runJournalRecent(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListRecent(journalLimit)
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func runJournalSymbol(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBySymbol(args[0])
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Trade:    %s\n", rec.TradeID)
	fmt.Printf("Time:     %s\n", rec.Time.Format(time.RFC3339))
	fmt.Printf("Side:     %s\n", rec.Side)
	fmt.Printf("Symbol:   %s\n", rec.Symbol)
	fmt.Printf("Quantity: %d\n", rec.Quantity)
	fmt.Printf("Price:    %.2f\n", rec.Price)
	fmt.Printf("Amount:   %.2f\n", rec.Amount)
	fmt.Printf("Balance:  %.2f\n", rec.Balance)
	return nil
}

func printRecords(recs []journal.TradeRecord) {
	if len(recs) == 0 {
		fmt.Println("no trades recorded")
		return
	}
	for _, rec := range recs {
		fmt.Printf("%s  %-4s %-6s x%-4d @ %8.2f  -> balance %10.2f  (%s)\n",
			rec.Time.Format("2006-01-02 15:04:05"),
			rec.Side, rec.Symbol, rec.Quantity, rec.Price, rec.Balance, rec.TradeID)
	}
}
