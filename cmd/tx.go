package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/renderer"
)

type txCmd struct {
	user string
	code string
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list trades in the ledger" }
func (*txCmd) Usage() string {
	return `stk tx [-user <id>] [-code <code>] [-head <n> | -tail <n>]

  Lists trades in chronological order, with options for filtering and
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Show only this user's trades.")
	f.StringVar(&c.code, "code", "", "Show only trades of this stock.")
	f.IntVar(&c.head, "head", 0, "Show only the first N trades.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N trades.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	var transactions []stockledger.Transaction
	for tx := range ledger.All() {
		if c.user != "" && tx.UserID != c.user {
			continue
		}
		if c.code != "" && tx.StockCode != c.code {
			continue
		}
		transactions = append(transactions, tx)
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions, userNames(ledger)))
	return subcommands.ExitSuccess
}
