package stockledger

import (
	"testing"

	"github.com/jwen/stockledger/date"
)

// buyOn creates a validated buy transaction for tests.
func buyOn(t *testing.T, userID, code string, quantity, price float64, day string) Transaction {
	t.Helper()
	tx := NewBuy(userID, code, "", Q(quantity), M(price), date.MustParse(day))
	if err := tx.Validate(); err != nil {
		t.Fatalf("invalid test buy: %v", err)
	}
	return tx
}

// sellOn creates a validated sell transaction for tests.
func sellOn(t *testing.T, userID, code string, quantity, price float64, day string) Transaction {
	t.Helper()
	tx := NewSell(userID, code, "", Q(quantity), M(price), date.MustParse(day))
	if err := tx.Validate(); err != nil {
		t.Fatalf("invalid test sell: %v", err)
	}
	return tx
}
