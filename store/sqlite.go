package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/date"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	phone       TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	create_time TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	stock_code  TEXT NOT NULL,
	stock_name  TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL,
	quantity    TEXT NOT NULL,
	price       TEXT NOT NULL,
	date        TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	create_time TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// SQLite is a Store backed by a local SQLite database. Quantity and price
// are stored as decimal strings, never as floats, so the exact values
// survive a round trip.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite ledger database.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) ListTransactions() ([]stockledger.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, user_id, stock_code, stock_name, type, quantity, price, date, notes, create_time
		FROM transactions ORDER BY date, create_time`)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}
	defer rows.Close()

	var txs []stockledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *SQLite) GetTransaction(id string) (stockledger.Transaction, error) {
	row := s.db.QueryRow(`SELECT id, user_id, stock_code, stock_name, type, quantity, price, date, notes, create_time
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return stockledger.Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return tx, err
}

func (s *SQLite) AddTransaction(tx stockledger.Transaction) error {
	_, err := s.db.Exec(`INSERT INTO transactions
		(id, user_id, stock_code, stock_name, type, quantity, price, date, notes, create_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.StockCode, tx.StockName, string(tx.Type),
		tx.Quantity.Decimal().String(), tx.Price.Decimal().String(),
		tx.Date.String(), tx.Notes, formatTime(tx.CreateTime))
	if err != nil {
		return fmt.Errorf("could not add transaction: %w", err)
	}
	return nil
}

func (s *SQLite) UpdateTransaction(tx stockledger.Transaction) error {
	res, err := s.db.Exec(`UPDATE transactions SET
		user_id = ?, stock_code = ?, stock_name = ?, type = ?, quantity = ?, price = ?, date = ?, notes = ?
		WHERE id = ?`,
		tx.UserID, tx.StockCode, tx.StockName, string(tx.Type),
		tx.Quantity.Decimal().String(), tx.Price.Decimal().String(),
		tx.Date.String(), tx.Notes, tx.ID)
	if err != nil {
		return fmt.Errorf("could not update transaction: %w", err)
	}
	return requireOneRow(res, "transaction", tx.ID)
}

func (s *SQLite) DeleteTransaction(id string) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete transaction: %w", err)
	}
	return requireOneRow(res, "transaction", id)
}

func (s *SQLite) ListUsers() ([]stockledger.User, error) {
	rows, err := s.db.Query(`SELECT id, name, phone, email, create_time FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	var users []stockledger.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLite) GetUser(id string) (stockledger.User, error) {
	row := s.db.QueryRow(`SELECT id, name, phone, email, create_time FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return stockledger.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return u, err
}

func (s *SQLite) AddUser(u stockledger.User) error {
	_, err := s.db.Exec(`INSERT INTO users (id, name, phone, email, create_time) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Phone, u.Email, formatTime(u.CreateTime))
	if err != nil {
		return fmt.Errorf("could not add user: %w", err)
	}
	return nil
}

func (s *SQLite) UpdateUser(u stockledger.User) error {
	res, err := s.db.Exec(`UPDATE users SET name = ?, phone = ?, email = ? WHERE id = ?`,
		u.Name, u.Phone, u.Email, u.ID)
	if err != nil {
		return fmt.Errorf("could not update user: %w", err)
	}
	return requireOneRow(res, "user", u.ID)
}

func (s *SQLite) DeleteUser(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete user: %w", err)
	}
	return requireOneRow(res, "user", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (stockledger.Transaction, error) {
	var tx stockledger.Transaction
	var quantity, price, day, created string
	var side string
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.StockCode, &tx.StockName, &side,
		&quantity, &price, &day, &tx.Notes, &created); err != nil {
		return tx, err
	}
	tx.Type = stockledger.TradeType(side)

	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return tx, fmt.Errorf("corrupt quantity %q for transaction %s: %w", quantity, tx.ID, err)
	}
	tx.Quantity = stockledger.Q(q)
	p, err := decimal.NewFromString(price)
	if err != nil {
		return tx, fmt.Errorf("corrupt price %q for transaction %s: %w", price, tx.ID, err)
	}
	tx.Price = stockledger.M(p)
	tx.Date, err = date.Parse(day)
	if err != nil {
		return tx, fmt.Errorf("corrupt date %q for transaction %s: %w", day, tx.ID, err)
	}
	tx.CreateTime, err = parseTime(created)
	if err != nil {
		return tx, fmt.Errorf("corrupt create_time %q for transaction %s: %w", created, tx.ID, err)
	}
	return tx, nil
}

func scanUser(row rowScanner) (stockledger.User, error) {
	var u stockledger.User
	var created string
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &created); err != nil {
		return u, err
	}
	var err error
	u.CreateTime, err = parseTime(created)
	if err != nil {
		return u, fmt.Errorf("corrupt create_time %q for user %s: %w", created, u.ID, err)
	}
	return u, nil
}

func requireOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
