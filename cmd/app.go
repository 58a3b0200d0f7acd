// Package cmd implements the CLI application to manage a stock trading ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/store"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&delCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")

	c.Register(&userCmd{}, "users")

	c.Register(&positionsCmd{}, "reports")
	c.Register(&profitsCmd{}, "reports")
	c.Register(&stocksCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&fetchCmd{}, "quotes")
	c.Register(&watchCmd{}, "quotes")

	c.Register(&exportCmd{}, "data")
	c.Register(&backupCmd{}, "data")
	c.Register(&restoreCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeKind = flag.String("store", "jsonl", "Storage backend: jsonl or sqlite")
var storePath = flag.String("path", "ledger.jsonl", "Path to the ledger file (or sqlite database)")

// openStore opens the store selected by the global flags. The returned
// closer is a no-op for backends without one.
func openStore() (store.Store, func() error, error) {
	switch *storeKind {
	case "jsonl":
		s, err := store.OpenJSONL(*storePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case "sqlite":
		s, err := store.OpenSQLite(*storePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want jsonl or sqlite)", *storeKind)
	}
}

// loadLedger reads the whole store into memory for report commands.
func loadLedger() (*stockledger.Ledger, func() error, error) {
	s, closer, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	ledger, err := store.Load(s)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return ledger, closer, nil
}

// userNames returns a resolver from user id to display name.
func userNames(ledger *stockledger.Ledger) func(string) string {
	return func(id string) string {
		if u := ledger.User(id); u != nil {
			return u.Name
		}
		return ""
	}
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (e.g. dumb terminals).
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure status, saving a few lines in
// every Execute method.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
