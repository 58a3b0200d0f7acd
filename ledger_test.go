package stockledger

import "testing"

func TestLedgerAppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		buyOn(t, "u1", "000001", 100, 10, "2024-02-10"),
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
	)
	ledger.Append(buyOn(t, "u1", "000001", 100, 10, "2024-01-20"))

	var dates []string
	for tx := range ledger.All() {
		dates = append(dates, tx.Date.String())
	}
	want := []string{"2024-01-10", "2024-01-20", "2024-02-10"}
	for i, d := range want {
		if dates[i] != d {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], d)
		}
	}
}

func TestLedgerUpdateAndDelete(t *testing.T) {
	ledger := NewLedger()
	tx := buyOn(t, "u1", "000001", 100, 10, "2024-01-10")
	ledger.Append(tx)

	tx.Quantity = Q(200)
	if err := ledger.Update(tx); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	got := ledger.Transaction(tx.ID)
	if got == nil || !got.Quantity.Equal(Q(200)) {
		t.Errorf("updated quantity = %v, want 200", got)
	}

	if err := ledger.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", ledger.Len())
	}

	if err := ledger.Delete(tx.ID); err == nil {
		t.Error("Delete() of unknown id should fail")
	}
	if err := ledger.Update(tx); err == nil {
		t.Error("Update() of unknown id should fail")
	}
}

func TestLedgerFilters(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		buyOn(t, "u1", "000001", 100, 10, "2024-01-10"),
		buyOn(t, "u2", "000001", 100, 10, "2024-01-11"),
		buyOn(t, "u1", "600519", 100, 10, "2024-01-12"),
	)

	if got := ledger.ByUser("u1"); len(got) != 2 {
		t.Errorf("ByUser(u1) returned %d transactions, want 2", len(got))
	}
	if got := ledger.ByStock("000001"); len(got) != 2 {
		t.Errorf("ByStock(000001) returned %d transactions, want 2", len(got))
	}
	if got := ledger.StockCodes(); len(got) != 2 || got[0] != "000001" || got[1] != "600519" {
		t.Errorf("StockCodes() = %v, want [000001 600519]", got)
	}
}

func TestLedgerUsers(t *testing.T) {
	ledger := NewLedger()
	bob := NewUser("bob")
	alice := NewUser("alice")
	ledger.AddUser(bob)
	ledger.AddUser(alice)

	users := ledger.Users()
	if len(users) != 2 || users[0].Name != "alice" || users[1].Name != "bob" {
		t.Fatalf("Users() = %v, want alice then bob", users)
	}

	if got := ledger.User(bob.ID); got == nil || got.Name != "bob" {
		t.Errorf("User(%s) = %v, want bob", bob.ID, got)
	}
	if got := ledger.User("missing"); got != nil {
		t.Errorf("User(missing) = %v, want nil", got)
	}

	if err := ledger.DeleteUser(alice.ID); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}
	if err := ledger.DeleteUser(alice.ID); err == nil {
		t.Error("DeleteUser() of unknown id should fail")
	}
}
