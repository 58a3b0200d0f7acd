package stockledger

import (
	"errors"
	"testing"
)

func TestComputePositions_WeightedAverage(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		buyOn(t, "u1", "000001", 1000, 12, "2024-02-10"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}

	pos := positions[0]
	// First buy: 10000 + 5 (commission floor) + 0.20 (transfer) = 10005.20.
	// Second buy: 12000 + 5 + 0.24 = 12005.24. Cost = 22010.44 over 2000 shares.
	if !pos.Quantity.Equal(Q(2000)) {
		t.Errorf("Quantity = %s, want 2000", pos.Quantity)
	}
	if !pos.Cost.Equal(M(22010.44)) {
		t.Errorf("Cost = %s, want %s", pos.Cost, M(22010.44))
	}
	if !pos.Fees.Equal(M(10.44)) {
		t.Errorf("Fees = %s, want %s", pos.Fees, M(10.44))
	}
	if !pos.AvgPrice.Equal(M(11.00522)) {
		t.Errorf("AvgPrice = %s, want %s", pos.AvgPrice, M(11.00522))
	}
}

func TestComputePositions_PartialSellScalesCost(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		buyOn(t, "u1", "000001", 1000, 12, "2024-02-10"),
		sellOn(t, "u1", "000001", 1000, 13, "2024-03-10"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}

	pos := positions[0]
	// Selling half the shares halves cost and fees; the average price is
	// unchanged, and the sell's own fees do not reduce the basis.
	if !pos.Quantity.Equal(Q(1000)) {
		t.Errorf("Quantity = %s, want 1000", pos.Quantity)
	}
	if !pos.Cost.Equal(M(11005.22)) {
		t.Errorf("Cost = %s, want %s", pos.Cost, M(11005.22))
	}
	if !pos.Fees.Equal(M(5.22)) {
		t.Errorf("Fees = %s, want %s", pos.Fees, M(5.22))
	}
	if !pos.AvgPrice.Equal(M(11.00522)) {
		t.Errorf("AvgPrice = %s, want %s", pos.AvgPrice, M(11.00522))
	}
}

func TestComputePositions_FullExitRemovesPosition(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 1000, 13, "2024-02-10"),
		buyOn(t, "u1", "000002", 500, 20, "2024-01-15"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}
	if positions[0].StockCode != "000002" {
		t.Errorf("remaining position = %s, want 000002", positions[0].StockCode)
	}
}

func TestComputePositions_OversellDefaultsToRemoval(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 150, 11, "2024-02-10"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 0 {
		t.Fatalf("got %d positions, want 0", len(positions))
	}
}

func TestComputePositionsWith_StrictOversell(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 150, 11, "2024-02-10"),
	}

	_, err := ComputePositionsWith(txs, EngineOptions{Strict: true})
	var oversold *OversoldError
	if !errors.As(err, &oversold) {
		t.Fatalf("got err %v, want OversoldError", err)
	}
	if oversold.UserID != "u1" || oversold.StockCode != "000001" {
		t.Errorf("OversoldError identifies %s/%s, want u1/000001", oversold.UserID, oversold.StockCode)
	}
	if !oversold.Held.Equal(Q(100)) || !oversold.Sold.Equal(Q(150)) {
		t.Errorf("OversoldError held %s sold %s, want 100 and 150", oversold.Held, oversold.Sold)
	}
}

func TestComputePositionsWith_StrictAllowsExactExit(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
		sellOn(t, "u1", "000001", 100, 11, "2024-02-10"),
	}

	positions, err := ComputePositionsWith(txs, EngineOptions{Strict: true})
	if err != nil {
		t.Fatalf("ComputePositionsWith() failed: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("got %d positions, want 0", len(positions))
	}
}

func TestComputePositions_SortsInputByDate(t *testing.T) {
	// The sell is listed first but dated after the buy.
	txs := []Transaction{
		sellOn(t, "u1", "000001", 500, 11, "2024-02-10"),
		buyOn(t, "u1", "000001", 1000, 10, "2024-01-10"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}
	if !positions[0].Quantity.Equal(Q(500)) {
		t.Errorf("Quantity = %s, want 500", positions[0].Quantity)
	}
}

func TestComputePositions_OutputSorted(t *testing.T) {
	txs := []Transaction{
		buyOn(t, "u2", "000002", 100, 10, "2024-01-10"),
		buyOn(t, "u1", "600519", 100, 10, "2024-01-10"),
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
	}

	positions := ComputePositions(txs)
	if len(positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(positions))
	}
	wantKeys := []string{"u1/000001", "u1/600519", "u2/000002"}
	for i, want := range wantKeys {
		if got := positions[i].Key(); got != want {
			t.Errorf("positions[%d].Key() = %s, want %s", i, got, want)
		}
	}
}

func TestPositionWithQuote(t *testing.T) {
	pos := Position{
		UserID:    "u1",
		StockCode: "000001",
		Quantity:  Q(1000),
		Cost:      M(10005.20),
		AvgPrice:  M(10.0052),
	}

	quoted := pos.WithQuote(M(11))
	if quoted.CurrentPrice == nil || !quoted.CurrentPrice.Equal(M(11)) {
		t.Errorf("CurrentPrice = %v, want 11", quoted.CurrentPrice)
	}
	if quoted.MarketValue == nil || !quoted.MarketValue.Equal(M(11000)) {
		t.Errorf("MarketValue = %v, want 11000", quoted.MarketValue)
	}
	if quoted.UnrealizedPL == nil || !quoted.UnrealizedPL.Equal(M(994.80)) {
		t.Errorf("UnrealizedPL = %v, want 994.80", quoted.UnrealizedPL)
	}
	// The original is untouched.
	if pos.CurrentPrice != nil {
		t.Error("WithQuote modified its receiver")
	}
}
