package stockledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jwen/stockledger/date"
)

// TradeType is a typed string identifying the side of a trade.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// ParseTradeType parses a string into a TradeType.
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(s) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type: %q", s)
	}
}

// stockCodePattern matches a 6-digit exchange security code. Leading zeros
// are significant, which is why codes are strings and never integers.
var stockCodePattern = regexp.MustCompile(`^\d{6}$`)

// Transaction is an immutable record of a single buy or sell trade.
type Transaction struct {
	ID         string    // opaque unique identifier
	UserID     string    // owner reference; the user entity lives in the store
	StockCode  string    // 6-digit exchange code, e.g. "000001"
	StockName  string    // display label only
	Type       TradeType // buy or sell
	Quantity   Quantity  // shares, positive
	Price      Money     // currency per share, positive
	Date       date.Date // trade date; time of day is irrelevant
	Notes      string
	CreateTime time.Time // audit timestamp, not used in any computation
}

// NewBuy creates a buy transaction with a fresh id.
func NewBuy(userID, code, name string, quantity Quantity, price Money, day date.Date) Transaction {
	return newTransaction(Buy, userID, code, name, quantity, price, day)
}

// NewSell creates a sell transaction with a fresh id.
func NewSell(userID, code, name string, quantity Quantity, price Money, day date.Date) Transaction {
	return newTransaction(Sell, userID, code, name, quantity, price, day)
}

func newTransaction(side TradeType, userID, code, name string, quantity Quantity, price Money, day date.Date) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		StockCode:  code,
		StockName:  name,
		Type:       side,
		Quantity:   quantity,
		Price:      price,
		Date:       day,
		CreateTime: time.Now(),
	}
}

// Amount returns the gross trade amount, quantity × price, fee-exclusive.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// Fees returns the fee breakdown this trade incurs under the fee schedule.
func (t Transaction) Fees() FeeBreakdown { return ComputeFees(t.Amount(), t.Type) }

// NetAmount returns the fee-inclusive money flow of the trade: amount plus
// fees on a buy, amount minus fees on a sell.
func (t Transaction) NetAmount() Money {
	fees := feeTotal(t.Amount(), t.Type)
	if t.Type == Sell {
		return t.Amount().Sub(fees)
	}
	return t.Amount().Add(fees)
}

// ValidationError reports a malformed transaction field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the transaction fields at the input boundary. All failures
// are reported, joined, so an import can surface them in one message.
// The engine assumes validated input; feeding it unvalidated records is
// programmer error.
func (t Transaction) Validate() error {
	var errs []error
	if t.UserID == "" {
		errs = append(errs, &ValidationError{Field: "userId", Message: "must not be empty"})
	}
	if !stockCodePattern.MatchString(t.StockCode) {
		errs = append(errs, &ValidationError{Field: "stockCode", Message: fmt.Sprintf("must be a 6-digit code, got %q", t.StockCode)})
	}
	if t.Type != Buy && t.Type != Sell {
		errs = append(errs, &ValidationError{Field: "type", Message: fmt.Sprintf("must be buy or sell, got %q", t.Type)})
	}
	if !t.Quantity.IsPositive() {
		errs = append(errs, &ValidationError{Field: "quantity", Message: fmt.Sprintf("must be positive, got %s", t.Quantity)})
	}
	if !t.Price.IsPositive() {
		errs = append(errs, &ValidationError{Field: "price", Message: fmt.Sprintf("must be positive, got %s", t.Price.Decimal())})
	}
	if t.Date.IsZero() {
		errs = append(errs, &ValidationError{Field: "date", Message: "must be set"})
	}
	return errors.Join(errs...)
}

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.UserID == o.UserID &&
		t.StockCode == o.StockCode &&
		t.StockName == o.StockName &&
		t.Type == o.Type &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Date == o.Date &&
		t.Notes == o.Notes
}

// SameTrade reports whether two transactions describe the same economic
// trade, ignoring identity and audit fields. Used for duplicate detection
// when importing broker exports.
func (t Transaction) SameTrade(o Transaction) bool {
	return t.UserID == o.UserID &&
		t.StockCode == o.StockCode &&
		t.Type == o.Type &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Date == o.Date
}

// MarshalJSON implements the json.Marshaler interface for Transaction,
// keeping a stable field order in the ledger file.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("userId", t.UserID)
	w.Append("stockCode", t.StockCode)
	w.Optional("stockName", t.StockName)
	w.Append("type", t.Type)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Optional("notes", t.Notes)
	if !t.CreateTime.IsZero() {
		w.Append("createTime", t.CreateTime.UTC().Format(time.RFC3339))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID         string    `json:"id"`
		UserID     string    `json:"userId"`
		StockCode  string    `json:"stockCode"`
		StockName  string    `json:"stockName"`
		Type       TradeType `json:"type"`
		Quantity   Quantity  `json:"quantity"`
		Price      Money     `json:"price"`
		Date       date.Date `json:"date"`
		Notes      string    `json:"notes"`
		CreateTime string    `json:"createTime"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.UserID = temp.UserID
	t.StockCode = temp.StockCode
	t.StockName = temp.StockName
	t.Type = temp.Type
	t.Quantity = temp.Quantity
	t.Price = temp.Price
	t.Date = temp.Date
	t.Notes = temp.Notes
	if temp.CreateTime != "" {
		created, err := time.Parse(time.RFC3339, temp.CreateTime)
		if err != nil {
			return fmt.Errorf("invalid createTime %q: %w", temp.CreateTime, err)
		}
		t.CreateTime = created
	}
	return nil
}
