package stockledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger file is JSONL: one record per line, each tagged with a "record"
// field so users and transactions can share a single file.
const (
	recordUser        = "user"
	recordTransaction = "transaction"
)

// DecodeLedger decodes a stream of JSONL data from an io.Reader into a
// sorted Ledger. Empty lines are skipped.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record: %w", line, err)
		}

		switch identifier.Record {
		case recordUser:
			var u User
			if err := json.Unmarshal(lineBytes, &u); err != nil {
				return nil, fmt.Errorf("line %d: invalid user record: %w", line, err)
			}
			ledger.AddUser(u)
		case recordTransaction:
			var tx Transaction
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("line %d: invalid transaction record: %w", line, err)
			}
			ledger.transactions = append(ledger.transactions, tx)
		default:
			return nil, fmt.Errorf("line %d: unknown record type: %q", line, identifier.Record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	return encodeRecord(w, recordTransaction, tx)
}

// EncodeUser writes a single user as one JSON line.
func EncodeUser(w io.Writer, u User) error {
	return encodeRecord(w, recordUser, u)
}

func encodeRecord(w io.Writer, record string, v json.Marshaler) error {
	var obj jsonObjectWriter
	obj.Append("record", record)
	obj.EmbedFrom(v)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", record, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s record: %w", record, err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format: user
// records first, then transactions in chronological order. The sort is
// stable, so same-day transactions keep their relative order across a
// decode/encode round trip.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	decimal.MarshalJSONWithoutQuotes = true

	for _, u := range ledger.Users() {
		if err := EncodeUser(w, u); err != nil {
			return err
		}
	}

	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
