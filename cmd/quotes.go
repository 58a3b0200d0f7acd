package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/subcommands"

	"github.com/jwen/stockledger/quote"
	"github.com/jwen/stockledger/renderer"
)

// quoteFlags configures the quote provider shared by fetch and watch.
type quoteFlags struct {
	url        string
	pricePath  string
	namePath   string
	changePath string
	timeout    time.Duration
}

func (c *quoteFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Quote endpoint URL pattern with %s%s for exchange and code. Uses built-in mock data when empty.")
	f.StringVar(&c.pricePath, "price-path", "$.price", "jsonpath to the price in the response.")
	f.StringVar(&c.namePath, "name-path", "", "jsonpath to the stock name, optional.")
	f.StringVar(&c.changePath, "change-path", "", "jsonpath to the price change, optional.")
	f.DurationVar(&c.timeout, "timeout", 5*time.Second, "Per-stock fetch timeout.")
}

func (c *quoteFlags) provider() quote.Provider {
	if c.url == "" {
		return &quote.Mock{}
	}
	return &quote.HTTP{
		URL:        c.url,
		PricePath:  c.pricePath,
		NamePath:   c.namePath,
		ChangePath: c.changePath,
	}
}

// --- Fetch Command ---

type fetchCmd struct {
	quoteFlags
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch quotes and show positions at market value" }
func (*fetchCmd) Usage() string {
	return `stk fetch [codes...] [-url <pattern>] [-timeout <duration>]

  Fetches quotes for the given codes, or for every held stock when none
  are given, then displays the positions with market value and unrealized
  profit. Stocks that cannot be quoted keep their cost columns and show a
  dash in the market columns.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	codes := f.Args()
	if len(codes) == 0 {
		codes = ledger.StockCodes()
	}
	if len(codes) == 0 {
		fmt.Println("Nothing to fetch: the ledger has no trades yet.")
		return subcommands.ExitSuccess
	}

	quotes := quote.Batch(ctx, c.provider(), codes, c.timeout)
	if len(quotes) < len(codes) {
		fmt.Fprintf(os.Stderr, "Warning: got %d of %d quotes.\n", len(quotes), len(codes))
	}

	positions := quote.JoinPositions(ledger.Positions(), quotes)
	printMarkdown(renderer.PositionsMarkdown(positions, userNames(ledger)))
	return subcommands.ExitSuccess
}

// --- Watch Command ---

type watchCmd struct {
	quoteFlags
	schedule string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "periodically refresh quotes and reprint positions" }
func (*watchCmd) Usage() string {
	return `stk watch [-cron <spec>] [-url <pattern>]

  Refreshes quotes for every held stock on a cron schedule (seconds field
  included, default every minute) and reprints the positions after each
  refresh. Interrupt to stop.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.schedule, "cron", "0 * * * * *", "Refresh schedule in cron format with seconds.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if len(ledger.StockCodes()) == 0 {
		fmt.Println("Nothing to watch: the ledger has no trades yet.")
		return subcommands.ExitSuccess
	}

	names := userNames(ledger)
	refresher := quote.NewRefresher(c.provider(), ledger.StockCodes, c.timeout, func(quotes map[string]quote.Quote) {
		positions := quote.JoinPositions(ledger.Positions(), quotes)
		fmt.Printf("\n--- %s ---\n", time.Now().Format("15:04:05"))
		printMarkdown(renderer.PositionsMarkdown(positions, names))
	})
	if err := refresher.Start(c.schedule); err != nil {
		return fail(err)
	}
	defer refresher.Stop()

	interrupt, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	<-interrupt.Done()
	fmt.Println("Stopped.")
	return subcommands.ExitSuccess
}
