package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/stocksim/config"
	"github.com/example/stocksim/journal"
	"github.com/example/stocksim/ledger"
	"github.com/example/stocksim/market"
	"github.com/example/stocksim/snapshot"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive trading session",
	Long: `Run an interactive paper-trading session.

Account state is restored from the snapshot file on startup (falling back to
a fresh account when the file is missing or malformed) and saved back on
exit. Prices advance in the background at the configured interval.

Commands inside the session:
  quotes              show current prices and profit rates
  buy <SYM> <QTY>     buy at the current price
  sell <SYM> <QTY>    sell at the current price
  balance             show cash balance and portfolio value
  holdings            show held quantities
  history [SYM]       show the bounded trade log
  reset yes           wipe the account back to its starting state
  quit                save the snapshot and exit

Example:
  stocksim run --config examples/configs/stocksim.yaml`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSeed       int64
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON); defaults apply when omitted")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random walk seed (0 seeds from the clock)")
}

func loadRunConfig() (*config.Config, error) {
	if runConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(runConfigPath)
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Nop{}, nil
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	seed := runSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := ledger.Params{
		StartingBalance: cfg.StartingBalance(),
		Listings:        cfg.Listings(),
		Source:          market.NewUniformWalk(seed),
	}

	state, warn := snapshot.Restore(cfg.Snapshot.Path)
	if warn != nil {
		fmt.Printf("warning: %v\n", warn)
	}

	acct, err := ledger.Rehydrate(params, state.Restored())
	if err != nil {
		// Snapshot state the ledger refuses is as recoverable as a missing
		// file: warn and start fresh.
		fmt.Printf("warning: snapshot rejected (%v), starting with a fresh account\n", err)
		acct, err = ledger.New(params)
		if err != nil {
			return err
		}
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	priceEvery, err := cfg.Refresh.ParsePriceInterval()
	if err != nil {
		return fmt.Errorf("refresh.price_interval: %w", err)
	}
	balanceEvery, err := cfg.Refresh.ParseBalanceInterval()
	if err != nil {
		return fmt.Errorf("refresh.balance_interval: %w", err)
	}

	s := newSession(acct, j)

	fmt.Printf("Balance: %s  Portfolio: %s\n", acct.Balance().StringFixed(2), acct.PortfolioValue().StringFixed(2))
	printQuotes(s.quotes())
	fmt.Println(`Type "help" for commands.`)

	stop := make(chan struct{})
	go tickLoop(s, priceEvery, balanceEvery, stop)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

loop:
	for {
		select {
		case <-sigs:
			fmt.Println("\ninterrupted")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if done := dispatch(s, line); done {
				break loop
			}
		}
	}

	close(stop)

	if err := snapshot.Save(cfg.Snapshot.Path, s.capture()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("snapshot saved to %s\n", cfg.Snapshot.Path)
	return nil
}

// tickLoop is the external scheduler: the engine exposes advance operations
// and this loop decides when to call them.
func tickLoop(s *session, priceEvery, balanceEvery time.Duration, stop <-chan struct{}) {
	priceT := time.NewTicker(priceEvery)
	defer priceT.Stop()
	balanceT := time.NewTicker(balanceEvery)
	defer balanceT.Stop()

	for {
		select {
		case <-stop:
			return
		case <-priceT.C:
			printTicks(s.advancePrices())
		case <-balanceT.C:
			balance, value := s.balanceView()
			fmt.Printf("[balance] cash %s  portfolio %s\n", balance, value)
		}
	}
}

// dispatch executes one command line; it returns true when the session
// should end.
func dispatch(s *session, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true

	case "help":
		fmt.Println("commands: quotes, buy <SYM> <QTY>, sell <SYM> <QTY>, balance, holdings, history [SYM], reset yes, quit")

	case "quotes":
		printQuotes(s.quotes())

	case "balance":
		balance, value := s.balanceView()
		fmt.Printf("cash %s  portfolio %s\n", balance, value)

	case "holdings":
		h := s.holdings()
		if len(h) == 0 {
			fmt.Println("no holdings")
			return false
		}
		for sym, qty := range h {
			fmt.Printf("  %-6s %d\n", sym, qty)
		}

	case "history":
		if len(fields) > 1 {
			printHistory(fields[1], s.historyFor(fields[1]))
			return false
		}
		for sym, recs := range s.history() {
			printHistory(sym, recs)
		}

	case "buy", "sell":
		runTrade(s, fields)

	case "reset":
		if len(fields) < 2 || fields[1] != "yes" {
			fmt.Println(`reset wipes balance, holdings and history; type "reset yes" to confirm`)
			return false
		}
		s.reset()
		balance, _ := s.balanceView()
		fmt.Printf("account reset; balance %s\n", balance)

	default:
		fmt.Printf("unknown command %q; type \"help\"\n", fields[0])
	}
	return false
}

func runTrade(s *session, fields []string) {
	if len(fields) != 3 {
		fmt.Printf("usage: %s <SYM> <QTY>\n", fields[0])
		return
	}
	qty, err := strconv.Atoi(fields[2])
	if err != nil || qty <= 0 {
		fmt.Printf("quantity must be a positive integer, got %q\n", fields[2])
		return
	}

	var exec ledger.Execution
	if fields[0] == "buy" {
		exec, err = s.buy(fields[1], qty)
	} else {
		exec, err = s.sell(fields[1], qty)
	}
	if err != nil {
		fmt.Printf("declined: %v\n", err)
		return
	}
	fmt.Printf("%s  balance %s\n", exec.Record, exec.Balance.StringFixed(2))
}

func printQuotes(quotes []market.Quote) {
	for _, q := range quotes {
		fmt.Printf("  %-6s %10s  %8s%%\n", q.Symbol, q.Price.StringFixed(2), q.ProfitRate.StringFixed(2))
	}
}

func printTicks(ticks []market.Tick) {
	parts := make([]string, 0, len(ticks))
	for _, tk := range ticks {
		trend := "="
		switch {
		case tk.Up():
			trend = "+"
		case tk.Down():
			trend = "-"
		}
		parts = append(parts, fmt.Sprintf("%s %s%s", tk.Symbol, tk.Price.StringFixed(2), trend))
	}
	fmt.Printf("[prices] %s\n", strings.Join(parts, "  "))
}

func printHistory(symbol string, recs []string) {
	if len(recs) == 0 {
		fmt.Printf("%s: no trades\n", symbol)
		return
	}
	fmt.Printf("%s:\n", symbol)
	for _, r := range recs {
		fmt.Printf("  %s\n", r)
	}
}
