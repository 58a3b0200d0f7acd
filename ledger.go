package stockledger

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger is the in-memory book of record: every user and every transaction.
//
// In a Ledger transactions are always in chronological order, ties broken by
// insertion order. All derived views (positions, profits, monthly stats) are
// recomputed from the transactions on demand; nothing derived is stored.
type Ledger struct {
	transactions []Transaction
	users        map[string]User // indexed by user id
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		users:        make(map[string]User),
	}
}

// Append adds a transaction to the ledger, keeping chronological order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// AddUser registers a user, replacing any previous record with the same id.
func (l *Ledger) AddUser(u User) { l.users = setUser(l.users, u) }

func setUser(users map[string]User, u User) map[string]User {
	if users == nil {
		users = make(map[string]User)
	}
	users[u.ID] = u
	return users
}

// User returns the user declared with this id, or nil if unknown.
func (l *Ledger) User(id string) *User {
	u, ok := l.users[id]
	if !ok {
		return nil
	}
	return &u
}

// Users returns all users sorted by name then id.
func (l *Ledger) Users() []User {
	users := make([]User, 0, len(l.users))
	for _, u := range l.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users
}

// DeleteUser removes a user record. Transactions referencing the user are
// left in place; they still compute, just with an unresolvable owner label.
func (l *Ledger) DeleteUser(id string) error {
	if _, ok := l.users[id]; !ok {
		return fmt.Errorf("unknown user: %q", id)
	}
	delete(l.users, id)
	return nil
}

// Transaction returns the transaction with this id, or nil if unknown.
func (l *Ledger) Transaction(id string) *Transaction {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			tx := l.transactions[i]
			return &tx
		}
	}
	return nil
}

// Update replaces the transaction with the same id and restores
// chronological order.
func (l *Ledger) Update(tx Transaction) error {
	for i := range l.transactions {
		if l.transactions[i].ID == tx.ID {
			l.transactions[i] = tx
			l.stableSort()
			return nil
		}
	}
	return fmt.Errorf("unknown transaction: %q", tx.ID)
}

// Delete removes the transaction with this id.
func (l *Ledger) Delete(id string) error {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown transaction: %q", id)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// All iterates over the transactions in chronological order.
func (l *Ledger) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Transactions returns a copy of the transactions in chronological order.
func (l *Ledger) Transactions() []Transaction {
	txs := make([]Transaction, len(l.transactions))
	copy(txs, l.transactions)
	return txs
}

// ByUser returns the transactions of one user, in chronological order.
func (l *Ledger) ByUser(userID string) []Transaction {
	return l.filter(func(tx Transaction) bool { return tx.UserID == userID })
}

// ByStock returns the transactions of one stock across all users,
// in chronological order.
func (l *Ledger) ByStock(code string) []Transaction {
	return l.filter(func(tx Transaction) bool { return tx.StockCode == code })
}

func (l *Ledger) filter(keep func(Transaction) bool) []Transaction {
	var txs []Transaction
	for _, tx := range l.transactions {
		if keep(tx) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// StockCodes returns the distinct stock codes ever traded, sorted.
func (l *Ledger) StockCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, tx := range l.transactions {
		if !seen[tx.StockCode] {
			seen[tx.StockCode] = true
			codes = append(codes, tx.StockCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// Positions computes the open positions over the whole ledger.
func (l *Ledger) Positions() []Position { return ComputePositions(l.transactions) }

// UserProfits computes the per-user profit summaries.
func (l *Ledger) UserProfits() []UserProfit { return ComputeUserProfits(l.transactions) }

// StockProfits computes the per-stock profit summaries.
func (l *Ledger) StockProfits() []StockProfit { return ComputeStockProfits(l.transactions) }

// MonthlyStats computes the per-month activity summaries.
func (l *Ledger) MonthlyStats() []MonthlyStat { return ComputeMonthlyStats(l.transactions) }

// OverallStats computes the whole-ledger totals.
func (l *Ledger) OverallStats() OverallStats { return ComputeOverallStats(l.transactions) }

// stableSort orders transactions by date, preserving the relative order of
// same-day transactions.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}
