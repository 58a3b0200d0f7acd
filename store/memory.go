package store

import (
	"fmt"
	"sort"
	"sync"

	stockledger "github.com/jwen/stockledger"
)

// Memory is an in-memory Store. It is safe for concurrent use and is the
// test fake for everything that takes a Store.
type Memory struct {
	mu    sync.RWMutex
	txs   map[string]stockledger.Transaction
	users map[string]stockledger.User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		txs:   make(map[string]stockledger.Transaction),
		users: make(map[string]stockledger.User),
	}
}

func (m *Memory) ListTransactions() ([]stockledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	txs := make([]stockledger.Transaction, 0, len(m.txs))
	for _, tx := range m.txs {
		txs = append(txs, tx)
	}
	// Map iteration order is random; same-day ties fall back to the audit
	// timestamp to keep listings deterministic.
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].CreateTime.Before(txs[j].CreateTime)
	})
	return txs, nil
}

func (m *Memory) GetTransaction(id string) (stockledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.txs[id]
	if !ok {
		return stockledger.Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return tx, nil
}

func (m *Memory) AddTransaction(tx stockledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[tx.ID] = tx
	return nil
}

func (m *Memory) UpdateTransaction(tx stockledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[tx.ID]; !ok {
		return fmt.Errorf("transaction %q: %w", tx.ID, ErrNotFound)
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *Memory) DeleteTransaction(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[id]; !ok {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	delete(m.txs, id)
	return nil
}

func (m *Memory) ListUsers() ([]stockledger.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]stockledger.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (m *Memory) GetUser(id string) (stockledger.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return stockledger.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return u, nil
}

func (m *Memory) AddUser(u stockledger.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) UpdateUser(u stockledger.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return fmt.Errorf("user %q: %w", u.ID, ErrNotFound)
	}
	m.users[u.ID] = u
	return nil
}

func (m *Memory) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	delete(m.users, id)
	return nil
}
