package stockledger

import "testing"

func TestComputeMonthlyStats(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		buyOn(t, "u1", "000002", 500, 20, "2024-01-20"),
		sellOn(t, "u1", "000001", 500, 12, "2024-02-05"),
		buyOn(t, "u2", "000001", 100, 11, "2024-02-15"),
	}

	stats := ComputeMonthlyStats(txs)
	if len(stats) != 2 {
		t.Fatalf("got %d months, want 2", len(stats))
	}

	// Most recent month first.
	feb := stats[0]
	if feb.Month != "2024-02" {
		t.Fatalf("stats[0].Month = %s, want 2024-02", feb.Month)
	}
	if !feb.BuyAmount.Equal(M(1100)) || feb.BuyCount != 1 {
		t.Errorf("feb buys = %s (%d), want 1100 (1)", feb.BuyAmount, feb.BuyCount)
	}
	if !feb.SellAmount.Equal(M(6000)) || feb.SellCount != 1 {
		t.Errorf("feb sells = %s (%d), want 6000 (1)", feb.SellAmount, feb.SellCount)
	}
	if !feb.NetAmount.Equal(M(4900)) {
		t.Errorf("feb NetAmount = %s, want 4900", feb.NetAmount)
	}

	jan := stats[1]
	if jan.Month != "2024-01" {
		t.Fatalf("stats[1].Month = %s, want 2024-01", jan.Month)
	}
	if !jan.BuyAmount.Equal(M(20000)) || jan.BuyCount != 2 {
		t.Errorf("jan buys = %s (%d), want 20000 (2)", jan.BuyAmount, jan.BuyCount)
	}
	if jan.SellCount != 0 || !jan.SellAmount.IsZero() {
		t.Errorf("jan sells = %s (%d), want none", jan.SellAmount, jan.SellCount)
	}
	if !jan.NetAmount.Equal(M(-20000)) {
		t.Errorf("jan NetAmount = %s, want -20000", jan.NetAmount)
	}
}

func TestComputeMonthlyStats_DescendingAcrossYears(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 100, 10, "2023-12-20"),
		buyOn(t, "u1", "000001", 100, 10, "2024-02-01"),
		buyOn(t, "u1", "000001", 100, 10, "2024-01-05"),
	}

	stats := ComputeMonthlyStats(txs)
	want := []string{"2024-02", "2024-01", "2023-12"}
	if len(stats) != len(want) {
		t.Fatalf("got %d months, want %d", len(stats), len(want))
	}
	for i, month := range want {
		if stats[i].Month != month {
			t.Errorf("stats[%d].Month = %s, want %s", i, stats[i].Month, month)
		}
	}
}

func TestComputeMonthlyStats_Empty(t *testing.T) {
	if stats := ComputeMonthlyStats(nil); len(stats) != 0 {
		t.Errorf("got %d months, want 0", len(stats))
	}
}
