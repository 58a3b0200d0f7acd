package stockledger

import (
	"strings"
	"testing"

	"github.com/jwen/stockledger/date"
)

func TestTransactionValidate(t *testing.T) {
	valid := buyOn(t, "u1", "000001", 100, 10, "2024-01-10")

	testCases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr string
	}{
		{"valid", func(tx *Transaction) {}, ""},
		{"missing user", func(tx *Transaction) { tx.UserID = "" }, "userId"},
		{"short code", func(tx *Transaction) { tx.StockCode = "1" }, "stockCode"},
		{"alpha code", func(tx *Transaction) { tx.StockCode = "AAPL01" }, "stockCode"},
		{"bad type", func(tx *Transaction) { tx.Type = "short" }, "type"},
		{"zero quantity", func(tx *Transaction) { tx.Quantity = Q(0) }, "quantity"},
		{"negative price", func(tx *Transaction) { tx.Price = M(-1) }, "price"},
		{"zero date", func(tx *Transaction) { tx.Date = date.Date{} }, "date"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestTransactionValidate_ReportsAllFailures(t *testing.T) {
	var tx Transaction
	err := tx.Validate()
	if err == nil {
		t.Fatal("Validate() of a zero transaction should fail")
	}
	for _, field := range []string{"userId", "stockCode", "type", "quantity", "price", "date"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error misses field %q: %v", field, err)
		}
	}
}

func TestTransactionSameTrade(t *testing.T) {
	a := buyOn(t, "u1", "000001", 100, 10, "2024-01-10")
	b := buyOn(t, "u1", "000001", 100, 10, "2024-01-10")
	if !a.SameTrade(b) {
		t.Error("identical trades with different ids should match")
	}

	c := b
	c.Quantity = Q(200)
	if a.SameTrade(c) {
		t.Error("trades with different quantities should not match")
	}

	d := b
	d.Date = date.MustParse("2024-01-11")
	if a.SameTrade(d) {
		t.Error("trades on different dates should not match")
	}
}

func TestTransactionAmount(t *testing.T) {
	tx := Transaction{Quantity: Q(300), Price: M(12.5)}
	if got := tx.Amount(); !got.Equal(M(3750)) {
		t.Errorf("Amount() = %s, want 3750", got)
	}
}
