package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/jwen/stockledger/export"
)

// --- Export Command ---

type exportCmd struct {
	what string
	file string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export ledger data as CSV" }
func (*exportCmd) Usage() string {
	return `stk export [-what transactions|positions|profits] [-file <csv>]

  Writes the selected view as CSV to the file, or to stdout when no file
  is given. Headers are in Chinese, ready for a spreadsheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.what, "what", "transactions", "View to export: transactions, positions or profits.")
	f.StringVar(&c.file, "file", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closer, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	defer closer()

	var out io.Writer = os.Stdout
	if c.file != "" {
		file, err := os.Create(c.file)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		out = file
	}

	switch c.what {
	case "transactions":
		err = export.Transactions(out, ledger.Transactions())
	case "positions":
		err = export.Positions(out, ledger.Positions())
	case "profits":
		err = export.UserProfits(out, ledger.UserProfits())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown view %q (want transactions, positions or profits)\n", c.what)
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}
	if c.file != "" {
		fmt.Printf("Exported %s to %s\n", c.what, c.file)
	}
	return subcommands.ExitSuccess
}

// --- Backup Command ---

type backupCmd struct {
	file string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "write a full JSON backup of the ledger" }
func (*backupCmd) Usage() string {
	return `stk backup -file <json>

  Writes every user and trade into a versioned JSON snapshot that
  'stk restore' reads back.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Backup file to write.")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	out, err := os.Create(c.file)
	if err != nil {
		return fail(err)
	}
	defer out.Close()

	if err := export.WriteBackup(out, s); err != nil {
		return fail(err)
	}
	fmt.Printf("Backup written to %s\n", c.file)
	return subcommands.ExitSuccess
}

// --- Restore Command ---

type restoreCmd struct {
	file string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore users and trades from a JSON backup" }
func (*restoreCmd) Usage() string {
	return `stk restore -file <json>

  Loads a backup written by 'stk backup'. Records whose ids already exist
  are skipped, so restoring twice is harmless.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Backup file to read.")
}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	backup, err := export.ReadBackup(in)
	if err != nil {
		return fail(err)
	}

	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	users, transactions, err := export.Restore(s, backup)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Restored %d users and %d trades from %s\n", users, transactions, c.file)
	return subcommands.ExitSuccess
}
