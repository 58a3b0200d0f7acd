package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/store"
)

// backupVersion identifies the backup format. Bump on incompatible change;
// Restore refuses versions it does not know.
const backupVersion = "1.0"

// Backup is the on-disk JSON backup document.
type Backup struct {
	Version      string                    `json:"version"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Users        []stockledger.User        `json:"users"`
	Transactions []stockledger.Transaction `json:"transactions"`
}

// WriteBackup dumps the whole store into a JSON backup.
func WriteBackup(w io.Writer, s store.Store) error {
	users, err := s.ListUsers()
	if err != nil {
		return fmt.Errorf("could not read users: %w", err)
	}
	txs, err := s.ListTransactions()
	if err != nil {
		return fmt.Errorf("could not read transactions: %w", err)
	}

	backup := Backup{
		Version:      backupVersion,
		CreatedAt:    time.Now().UTC(),
		Users:        users,
		Transactions: txs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("could not encode backup: %w", err)
	}
	return nil
}

// ReadBackup parses and validates a backup document. Every transaction is
// validated, so a corrupted backup is rejected before anything touches the
// store.
func ReadBackup(r io.Reader) (*Backup, error) {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("could not decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	for i, tx := range backup.Transactions {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction %d (%s): %w", i, tx.ID, err)
		}
	}
	for i, u := range backup.Users {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("invalid user %d (%s): %w", i, u.ID, err)
		}
	}
	return &backup, nil
}

// Restore loads a backup into the store, skipping records whose ids are
// already present. Returns how many users and transactions were added.
func Restore(s store.Store, backup *Backup) (users, transactions int, err error) {
	for _, u := range backup.Users {
		if _, err := s.GetUser(u.ID); err == nil {
			continue
		}
		if err := s.AddUser(u); err != nil {
			return users, transactions, fmt.Errorf("could not restore user %s: %w", u.ID, err)
		}
		users++
	}
	for _, tx := range backup.Transactions {
		if _, err := s.GetTransaction(tx.ID); err == nil {
			continue
		}
		if err := s.AddTransaction(tx); err != nil {
			return users, transactions, fmt.Errorf("could not restore transaction %s: %w", tx.ID, err)
		}
		transactions++
	}
	return users, transactions, nil
}
