package stockledger

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ledger currency. All amounts in the ledger are CNY:
// the fee schedule is the A-share one and broker exports quote in yuan.
const Currency = "CNY"

// Money represents a monetary value in the ledger currency.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the full currency definition for formatting.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, Currency).Currency()
}

// String returns the string representation of the money value, e.g. "¥1,234.50".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Mul scales the amount by a share count.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }

// Div divides the amount by a share count, yielding a per-share price.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// Scale multiplies the amount by a dimensionless decimal factor.
func (m Money) Scale(f decimal.Decimal) Money { return Money{value: m.value.Mul(f)} }

// Round2 rounds to 2 decimal places, half away from zero (currency rounding).
// It is applied to presented values only; running sums stay exact.
func (m Money) Round2() Money { return Money{value: m.value.Round(2)} }

// Decimal returns the exact underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// AsFloat returns the value as a float64. Reports and analytics only; the
// ledger itself keeps the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON persists the exact value as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
