package stockledger

import "testing"

func TestComputeUserProfits_BuysOnly(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 12.50, "2024-01-15"),
		buyOn(t, "u1", "000002", 500, 18.80, "2024-01-20"),
	}

	profits := ComputeUserProfits(txs)
	if len(profits) != 1 {
		t.Fatalf("got %d profits, want 1", len(profits))
	}

	p := profits[0]
	// 12500 + 9400 = 21900 invested, nothing sold yet: the lifetime
	// cash-flow figure is a full loss until positions are exited.
	if !p.TotalBuyAmount.Equal(M(21900)) {
		t.Errorf("TotalBuyAmount = %s, want %s", p.TotalBuyAmount, M(21900))
	}
	if !p.TotalSellAmount.IsZero() {
		t.Errorf("TotalSellAmount = %s, want 0", p.TotalSellAmount)
	}
	if !p.RealizedPL.Equal(M(-21900)) {
		t.Errorf("RealizedPL = %s, want %s", p.RealizedPL, M(-21900))
	}
	// Fees: (5 + 0.25) on the 12500 buy, (5 + 0.188) on the 9400 buy.
	if !p.TotalFees.Equal(M(10.438)) {
		t.Errorf("TotalFees = %s, want %s", p.TotalFees, M(10.438))
	}
	if !p.NetRealizedPL.Equal(M(-21910.438)) {
		t.Errorf("NetRealizedPL = %s, want %s", p.NetRealizedPL, M(-21910.438))
	}
	if p.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", p.TransactionCount)
	}
}

func TestComputeUserProfits_SortedAndSeparated(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "bob", "000001", 100, 10, "2024-01-10"),
		buyOn(t, "alice", "000001", 200, 10, "2024-01-10"),
	}

	profits := ComputeUserProfits(txs)
	if len(profits) != 2 {
		t.Fatalf("got %d profits, want 2", len(profits))
	}
	if profits[0].UserID != "alice" || profits[1].UserID != "bob" {
		t.Errorf("order = %s, %s, want alice, bob", profits[0].UserID, profits[1].UserID)
	}
	if !profits[0].TotalBuyAmount.Equal(M(2000)) {
		t.Errorf("alice TotalBuyAmount = %s, want 2000", profits[0].TotalBuyAmount)
	}
}

func TestComputeStockProfits(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 400, 12, "2024-02-10"),
	}

	profits := ComputeStockProfits(txs)
	if len(profits) != 1 {
		t.Fatalf("got %d profits, want 1", len(profits))
	}

	p := profits[0]
	if !p.TotalBuyQuantity.Equal(Q(1000)) || !p.TotalSellQuantity.Equal(Q(400)) {
		t.Errorf("quantities = %s/%s, want 1000/400", p.TotalBuyQuantity, p.TotalSellQuantity)
	}
	if !p.AvgBuyPrice.Equal(M(10)) {
		t.Errorf("AvgBuyPrice = %s, want 10", p.AvgBuyPrice)
	}
	if !p.AvgSellPrice.Equal(M(12)) {
		t.Errorf("AvgSellPrice = %s, want 12", p.AvgSellPrice)
	}
	if !p.RealizedPL.Equal(M(-5200)) {
		t.Errorf("RealizedPL = %s, want -5200", p.RealizedPL)
	}
	// Buy fees 5 + 0.20; sell fees 5 + 4.80 + 0.096.
	if !p.TotalFees.Equal(M(15.096)) {
		t.Errorf("TotalFees = %s, want %s", p.TotalFees, M(15.096))
	}
	if !p.NetRealizedPL.Equal(M(-5215.096)) {
		t.Errorf("NetRealizedPL = %s, want %s", p.NetRealizedPL, M(-5215.096))
	}
}

func TestComputeStockProfits_NoSellsLeavesAvgSellZero(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
	}

	profits := ComputeStockProfits(txs)
	if len(profits) != 1 {
		t.Fatalf("got %d profits, want 1", len(profits))
	}
	if !profits[0].AvgSellPrice.IsZero() {
		t.Errorf("AvgSellPrice = %s, want 0", profits[0].AvgSellPrice)
	}
}

func TestComputeOverallStats(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 1000, 12, "2024-02-10"),
	}

	stats := ComputeOverallStats(txs)
	if !stats.TotalInvestment.Equal(M(10000)) {
		t.Errorf("TotalInvestment = %s, want 10000", stats.TotalInvestment)
	}
	if !stats.TotalReturn.Equal(M(12000)) {
		t.Errorf("TotalReturn = %s, want 12000", stats.TotalReturn)
	}
	if !stats.TotalProfit.Equal(M(2000)) {
		t.Errorf("TotalProfit = %s, want 2000", stats.TotalProfit)
	}
	if !stats.ProfitRate.Equal(Percent(20)) {
		t.Errorf("ProfitRate = %s, want 20.00%%", stats.ProfitRate)
	}
	// Buy fees 5 + 0.20; sell fees 5 + 12 + 0.24.
	if !stats.TotalFees.Equal(M(22.44)) {
		t.Errorf("TotalFees = %s, want %s", stats.TotalFees, M(22.44))
	}
	if stats.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", stats.TransactionCount)
	}
}

func TestComputeOverallStats_EmptyLedger(t *testing.T) {
	stats := ComputeOverallStats(nil)
	if stats.TransactionCount != 0 || !stats.TotalProfit.IsZero() {
		t.Errorf("empty ledger stats = %+v, want zero values", stats)
	}
	if !stats.ProfitRate.Equal(Percent(0)) {
		t.Errorf("ProfitRate = %s, want 0.00%%", stats.ProfitRate)
	}
}
