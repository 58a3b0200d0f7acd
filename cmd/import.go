package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jwen/stockledger/broker"
)

type importCmd struct {
	user     string
	file     string
	broker   string
	template bool
	errFile  string
	dryRun   bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a broker CSV export" }
func (*importCmd) Usage() string {
	return `stk import -user <id> -file <csv> [-broker <name>] [-errors <csv>] [-dry-run]
stk import -template

  Imports a broker CSV export. The template is auto-detected from the
  header row unless -broker names one of: 华泰证券, 东方财富, 同花顺,
  通用模板. Rows already in the ledger are skipped; bad rows are reported
  per line and never abort the import.

  -template prints a sample CSV in the generic layout instead.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id the imported trades belong to.")
	f.StringVar(&c.file, "file", "", "CSV file to import.")
	f.StringVar(&c.broker, "broker", "", "Broker template name. Auto-detected when empty.")
	f.BoolVar(&c.template, "template", false, "Print a sample CSV and exit.")
	f.StringVar(&c.errFile, "errors", "", "Write rejected rows to this CSV file.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Parse and report, but do not save anything.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.template {
		if err := broker.WriteTemplate(os.Stdout); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	if c.user == "" || c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	result, err := broker.Import(in, c.user, c.broker)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Detected %s (confidence %.0f%%), %d rows, %d valid, %d rejected.\n",
		result.Broker, result.Confidence*100, result.Total, len(result.Transactions), len(result.Errors))
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, msg)
	}

	if c.errFile != "" && len(result.Errors) > 0 {
		out, err := os.Create(c.errFile)
		if err != nil {
			return fail(err)
		}
		defer out.Close()
		if err := broker.WriteErrorReport(out, result); err != nil {
			return fail(err)
		}
	}

	if c.dryRun {
		return subcommands.ExitSuccess
	}

	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	summary, err := broker.Save(s, result.Transactions)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Saved %d trades, skipped %d duplicates.\n", summary.Saved, summary.Duplicates)
	return subcommands.ExitSuccess
}
