package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/date"
	"github.com/jwen/stockledger/store"
)

// tradeFlags holds the flags shared by the buy and sell commands.
type tradeFlags struct {
	user     string
	code     string
	name     string
	quantity float64
	price    float64
	date     string
	notes    string
}

func (c *tradeFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id the trade belongs to")
	f.StringVar(&c.code, "code", "", "6-digit stock code")
	f.StringVar(&c.name, "name", "", "Stock name")
	f.Float64Var(&c.quantity, "qty", 0, "Number of shares")
	f.Float64Var(&c.price, "price", 0, "Price per share")
	f.StringVar(&c.date, "date", time.Now().Format("2006-01-02"), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.notes, "notes", "", "An optional note for the trade")
}

// recordTrade validates the trade, refuses exact duplicates and appends it
// to the store.
func recordTrade(c *tradeFlags, f *flag.FlagSet, side stockledger.TradeType) subcommands.ExitStatus {
	if c.user == "" || c.code == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var tx stockledger.Transaction
	if side == stockledger.Buy {
		tx = stockledger.NewBuy(c.user, c.code, c.name, stockledger.Q(c.quantity), stockledger.M(c.price), day)
	} else {
		tx = stockledger.NewSell(c.user, c.code, c.name, stockledger.Q(c.quantity), stockledger.M(c.price), day)
	}
	tx.Notes = c.notes
	if err := tx.Validate(); err != nil {
		return fail(err)
	}

	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	dup, err := store.FindDuplicate(s, tx)
	if err != nil {
		return fail(err)
	}
	if dup != nil {
		fmt.Fprintf(os.Stderr, "Warning: identical trade already recorded on %s (id %s), skipping.\n", dup.Date, dup.ID)
		return subcommands.ExitSuccess
	}
	if err := s.AddTransaction(tx); err != nil {
		return fail(err)
	}

	fees := tx.Fees()
	fmt.Printf("Recorded %s %s x %s @ %s, fees %s, id %s\n",
		tx.Type, tx.StockCode, tx.Quantity, tx.Price.Round2(), fees.Total, tx.ID)
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase, opening or adding to a position" }
func (*buyCmd) Usage() string {
	return `stk buy -user <id> -code <code> -qty <quantity> -price <price> [-name <name>] [-date <date>] [-notes <text>]

  Records a buy trade. Commission and transfer fee are computed automatically
  and added to the position cost.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTrade(&c.tradeFlags, f, stockledger.Buy)
}

// --- Sell Command ---

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, trimming or closing a position" }
func (*sellCmd) Usage() string {
	return `stk sell -user <id> -code <code> -qty <quantity> -price <price> [-name <name>] [-date <date>] [-notes <text>]

  Records a sell trade. Commission, stamp duty and transfer fee are computed
  automatically and deducted from the proceeds.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTrade(&c.tradeFlags, f, stockledger.Sell)
}

// --- Delete Command ---

type delCmd struct {
	id string
}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete a trade by id" }
func (*delCmd) Usage() string {
	return `stk del -id <transaction_id>

  Deletes a trade. Positions and profits are recomputed from the remaining
  trades, so deleting is always safe.
`
}
func (c *delCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id to delete")
}
func (c *delCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if err := s.DeleteTransaction(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
