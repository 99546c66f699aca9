package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stocksim/config"
	"github.com/example/stocksim/ledger"
	"github.com/example/stocksim/market"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted trading session",
	Long: `Run a scripted, non-interactive trading session with the default
instruments.

Shows the basic workflow of:
  1. Creating a fresh account
  2. Buying and selling against current prices
  3. Advancing prices with the bounded random walk
  4. Declined trades leaving state untouched
  5. The bounded per-symbol trade log

No snapshot or journal files are written.`,
	RunE: runDemo,
}

var demoSeed int64

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1, "random walk seed")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	acct, err := ledger.New(ledger.Params{
		StartingBalance: cfg.StartingBalance(),
		Listings:        cfg.Listings(),
		Source:          market.NewUniformWalk(demoSeed),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Fresh account, balance %s\n\n", acct.Balance().StringFixed(2))
	printQuotes(acct.Quotes())

	fmt.Println("\n--- buying ---")
	demoTrade(acct.Buy("AAPL", 10))
	demoTrade(acct.Buy("AWS", 20))

	fmt.Println("\n--- three price ticks ---")
	for i := 0; i < 3; i++ {
		printTicks(acct.AdvancePrices())
	}
	printQuotes(acct.Quotes())

	fmt.Println("\n--- selling ---")
	demoTrade(acct.Sell("AAPL", 5))

	fmt.Println("\n--- declined trades leave state untouched ---")
	demoTrade(acct.Sell("AAPL", 500)) // more than held
	demoTrade(acct.Buy("GOOG", 1000)) // more than the balance covers
	fmt.Printf("balance still %s, AAPL still %d\n",
		acct.Balance().StringFixed(2), acct.Holdings()["AAPL"])

	fmt.Println("\n--- bounded trade log (cap", ledger.HistoryCap, ") ---")
	for i := 0; i < 20; i++ {
		if _, err := acct.Buy("MSFT", 1); err != nil {
			return err
		}
	}
	recs := acct.HistoryFor("MSFT")
	fmt.Printf("20 buys, %d records kept; oldest retained: %s\n", len(recs), recs[0])

	fmt.Println("\n--- final state ---")
	fmt.Printf("cash %s  portfolio %s\n", acct.Balance().StringFixed(2), acct.PortfolioValue().StringFixed(2))
	for sym, qty := range acct.Holdings() {
		fmt.Printf("  %-6s %d\n", sym, qty)
	}
	return nil
}

func demoTrade(exec ledger.Execution, err error) {
	if err != nil {
		fmt.Printf("declined: %v\n", err)
		return
	}
	fmt.Printf("%s  balance %s\n", exec.Record, exec.Balance.StringFixed(2))
}
