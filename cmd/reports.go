package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/analytics"
	"github.com/jwen/stockledger/renderer"
)

// --- Positions Command ---

type positionsCmd struct {
	user   string
	strict bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the open positions" }
func (*positionsCmd) Usage() string {
	return `stk positions [-user <id>] [-strict]

  Displays the open positions computed from all trades using weighted
  average cost. With -strict, a trade that sells more than is held is an
  error instead of silently closing the position.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Show only this user's positions.")
	f.BoolVar(&c.strict, "strict", false, "Fail on oversold positions.")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	transactions := ledger.Transactions()
	if c.user != "" {
		transactions = ledger.ByUser(c.user)
	}

	positions, err := stockledger.ComputePositionsWith(transactions, stockledger.EngineOptions{Strict: c.strict})
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.PositionsMarkdown(positions, userNames(ledger)))
	return subcommands.ExitSuccess
}

// --- Profits Command ---

type profitsCmd struct{}

func (*profitsCmd) Name() string     { return "profits" }
func (*profitsCmd) Synopsis() string { return "display per-user realized profit and loss" }
func (*profitsCmd) Usage() string {
	return `stk profits

  Displays each user's buy and sell totals, fees, and realized profit over
  the whole ledger.
`
}
func (*profitsCmd) SetFlags(f *flag.FlagSet) {}
func (c *profitsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.UserProfitsMarkdown(ledger.UserProfits(), userNames(ledger)))
	return subcommands.ExitSuccess
}

// --- Stocks Command ---

type stocksCmd struct{}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "display per-stock trading summary" }
func (*stocksCmd) Usage() string {
	return `stk stocks

  Displays per-stock traded quantities, average prices, fees and realized
  profit across all users.
`
}
func (*stocksCmd) SetFlags(f *flag.FlagSet) {}
func (c *stocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.StockProfitsMarkdown(ledger.StockProfits()))
	return subcommands.ExitSuccess
}

// --- Monthly Command ---

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display per-month trading activity" }
func (*monthlyCmd) Usage() string {
	return `stk monthly

  Displays buy and sell amounts and trade counts per calendar month,
  most recent first.
`
}
func (*monthlyCmd) SetFlags(f *flag.FlagSet) {}
func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.MonthlyMarkdown(ledger.MonthlyStats()))
	return subcommands.ExitSuccess
}

// --- Summary Command ---

type summaryCmd struct {
	analyze bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display whole-ledger totals" }
func (*summaryCmd) Usage() string {
	return `stk summary [-analyze]

  Displays total investment, total return, fees and overall profit rate.
  With -analyze, appends a portfolio concentration and diversification
  analysis of the open positions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.analyze, "analyze", false, "Include concentration and diversification analysis.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	out := renderer.SummaryMarkdown(ledger.OverallStats())
	if c.analyze {
		positions := ledger.Positions()
		out += "\n" + renderer.AnalyticsMarkdown(
			analytics.ComputeConcentration(positions),
			analytics.ComputeDiversification(positions),
		)
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}
