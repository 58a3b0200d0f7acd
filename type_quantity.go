package stockledger

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity represents a number of shares.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool              { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool           { return q.value.LessThan(p.value) }
func (q Quantity) LessThanOrEqual(p Quantity) bool    { return q.value.LessThanOrEqual(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool        { return q.value.GreaterThan(p.value) }
func (q Quantity) Add(p Quantity) Quantity            { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity            { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool                   { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool                   { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                       { return q.value.IsZero() }
func (q Quantity) String() string                     { return q.value.String() }

// Ratio returns q/p as a dimensionless decimal factor.
func (q Quantity) Ratio(p Quantity) decimal.Decimal { return q.value.Div(p.value) }

// MulPrice returns the gross amount of q shares at price m.
func (q Quantity) MulPrice(m Money) Money { return m.Mul(q) }

// Decimal returns the exact underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// AsFloat returns the value as a float64, for reports only.
func (q Quantity) AsFloat() float64 { return q.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface for Quantity.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	return q.value.UnmarshalJSON(data)
}
