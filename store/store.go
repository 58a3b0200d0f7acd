// Package store provides persistence backends for the ledger: an in-memory
// fake, a JSONL file and a SQLite database, all behind the same interface.
package store

import (
	"errors"

	stockledger "github.com/jwen/stockledger"
)

// ErrNotFound is returned when a transaction or user id is unknown.
var ErrNotFound = errors.New("not found")

// TransactionStore is the persistence surface for transactions.
type TransactionStore interface {
	// ListTransactions returns all transactions in chronological order.
	ListTransactions() ([]stockledger.Transaction, error)
	GetTransaction(id string) (stockledger.Transaction, error)
	AddTransaction(tx stockledger.Transaction) error
	// UpdateTransaction replaces the stored transaction with the same id.
	UpdateTransaction(tx stockledger.Transaction) error
	DeleteTransaction(id string) error
}

// UserStore is the persistence surface for users.
type UserStore interface {
	// ListUsers returns all users sorted by name.
	ListUsers() ([]stockledger.User, error)
	GetUser(id string) (stockledger.User, error)
	AddUser(u stockledger.User) error
	UpdateUser(u stockledger.User) error
	DeleteUser(id string) error
}

// Store is a full persistence backend.
type Store interface {
	TransactionStore
	UserStore
}

// FindDuplicate returns the first stored transaction describing the same
// economic trade, or nil. Broker exports overlap between downloads, so the
// import flow checks every candidate row against the store before adding it.
func FindDuplicate(s TransactionStore, tx stockledger.Transaction) (*stockledger.Transaction, error) {
	existing, err := s.ListTransactions()
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].SameTrade(tx) {
			return &existing[i], nil
		}
	}
	return nil, nil
}

// Load reads the whole store into an in-memory Ledger for computation.
func Load(s Store) (*stockledger.Ledger, error) {
	ledger := stockledger.NewLedger()
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		ledger.AddUser(u)
	}
	txs, err := s.ListTransactions()
	if err != nil {
		return nil, err
	}
	ledger.Append(txs...)
	return ledger, nil
}
