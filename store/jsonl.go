package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	stockledger "github.com/jwen/stockledger"
)

// JSONL is a Store backed by a single JSONL ledger file. The whole file is
// loaded on open and rewritten on every mutation; ledgers are personal-sized,
// a few thousand lines at most, so simplicity wins over incremental writes.
type JSONL struct {
	path string

	mu     sync.Mutex
	ledger *stockledger.Ledger
}

// OpenJSONL opens (or creates) a JSONL ledger file.
func OpenJSONL(path string) (*JSONL, error) {
	s := &JSONL{path: path}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		s.ledger = stockledger.NewLedger()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file: %w", err)
	}
	defer f.Close()
	ledger, err := stockledger.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %s: %w", path, err)
	}
	s.ledger = ledger
	return s, nil
}

// save rewrites the whole ledger file through a temp file and a rename, so
// a crash mid-write never truncates the previous ledger.
func (s *JSONL) save() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := stockledger.EncodeLedger(tmp, s.ledger); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger file: %w", err)
	}
	return nil
}

func (s *JSONL) ListTransactions() ([]stockledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transactions(), nil
}

func (s *JSONL) GetTransaction(id string) (stockledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.ledger.Transaction(id)
	if tx == nil {
		return stockledger.Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return *tx, nil
}

func (s *JSONL) AddTransaction(tx stockledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Append(tx)
	return s.save()
}

func (s *JSONL) UpdateTransaction(tx stockledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Update(tx); err != nil {
		return fmt.Errorf("transaction %q: %w", tx.ID, ErrNotFound)
	}
	return s.save()
}

func (s *JSONL) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Delete(id); err != nil {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return s.save()
}

func (s *JSONL) ListUsers() ([]stockledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Users(), nil
}

func (s *JSONL) GetUser(id string) (stockledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ledger.User(id)
	if u == nil {
		return stockledger.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return *u, nil
}

func (s *JSONL) AddUser(u stockledger.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.AddUser(u)
	return s.save()
}

func (s *JSONL) UpdateUser(u stockledger.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.User(u.ID) == nil {
		return fmt.Errorf("user %q: %w", u.ID, ErrNotFound)
	}
	s.ledger.AddUser(u)
	return s.save()
}

func (s *JSONL) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.DeleteUser(id); err != nil {
		return fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return s.save()
}
