package cmd

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
)

// useTempStore points the global store flags at a fresh jsonl file.
func useTempStore(t *testing.T) {
	t.Helper()
	oldKind, oldPath := *storeKind, *storePath
	*storeKind = "jsonl"
	*storePath = filepath.Join(t.TempDir(), "ledger.jsonl")
	t.Cleanup(func() { *storeKind, *storePath = oldKind, oldPath })
}

func TestOpenStore_UnknownKind(t *testing.T) {
	useTempStore(t)
	*storeKind = "bolt"
	if _, _, err := openStore(); err == nil {
		t.Fatal("openStore should reject an unknown backend")
	}
}

func TestRecordTrade(t *testing.T) {
	useTempStore(t)

	c := &tradeFlags{
		user:     "u1",
		code:     "000001",
		name:     "平安银行",
		quantity: 1000,
		price:    12.50,
		date:     "2024-01-15",
	}
	f := flag.NewFlagSet("buy", flag.ContinueOnError)
	if got := recordTrade(c, f, stockledger.Buy); got != subcommands.ExitSuccess {
		t.Fatalf("recordTrade = %v, want success", got)
	}

	// The identical trade again is skipped, not duplicated.
	if got := recordTrade(c, f, stockledger.Buy); got != subcommands.ExitSuccess {
		t.Fatalf("duplicate recordTrade = %v, want success", got)
	}

	ledger, closer, err := loadLedger()
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	if ledger.Len() != 1 {
		t.Errorf("ledger has %d trades, want 1", ledger.Len())
	}
}

func TestRecordTrade_Invalid(t *testing.T) {
	useTempStore(t)

	c := &tradeFlags{user: "u1", code: "000001", quantity: 0, price: 12.50, date: "2024-01-15"}
	f := flag.NewFlagSet("buy", flag.ContinueOnError)
	if got := recordTrade(c, f, stockledger.Buy); got != subcommands.ExitUsageError {
		t.Fatalf("recordTrade without quantity = %v, want usage error", got)
	}

	c = &tradeFlags{user: "u1", code: "000001", quantity: 100, price: 12.50, date: "not-a-date"}
	if got := recordTrade(c, f, stockledger.Buy); got != subcommands.ExitUsageError {
		t.Fatalf("recordTrade with bad date = %v, want usage error", got)
	}
}
