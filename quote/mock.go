package quote

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	stockledger "github.com/jwen/stockledger"
)

// mockQuote is one row of the fixed price table.
type mockQuote struct {
	name          string
	price         float64
	change        float64
	changePercent float64
}

// mockTable holds well-known A-share codes with plausible prices, used
// offline and in tests.
var mockTable = map[string]mockQuote{
	"000001": {"平安银行", 13.25, 0.15, 1.15},
	"000002": {"万科A", 19.85, -0.12, -0.60},
	"600036": {"招商银行", 45.78, 0.42, 0.93},
	"600519": {"贵州茅台", 1685.50, 12.30, 0.74},
	"000858": {"五粮液", 68.92, -0.58, -0.83},
	"601318": {"中国平安", 48.65, 0.25, 0.52},
	"000333": {"美的集团", 72.18, 1.05, 1.48},
	"600000": {"浦发银行", 7.85, -0.05, -0.63},
	"601166": {"兴业银行", 16.42, 0.08, 0.49},
	"000651": {"格力电器", 42.35, -0.45, -1.05},
}

// Mock is an offline Provider. Codes in the fixed table get their listed
// price; any other code gets a synthetic quote derived from a hash of the
// code, so repeated calls agree with each other.
type Mock struct {
	// Now supplies quote timestamps; defaults to time.Now.
	Now func() time.Time
}

func (m *Mock) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Mock) Price(ctx context.Context, code string) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	if row, ok := mockTable[code]; ok {
		return Quote{
			Code:          code,
			Name:          row.name,
			Price:         stockledger.M(row.price),
			Change:        stockledger.M(row.change),
			ChangePercent: stockledger.Percent(row.changePercent),
			Time:          m.now(),
		}, nil
	}
	return m.synthetic(code), nil
}

// synthetic derives a stable pseudo-quote in the 10..110 price range from
// the code alone.
func (m *Mock) synthetic(code string) Quote {
	h := fnv.New32a()
	h.Write([]byte(code))
	sum := h.Sum32()

	price := 10 + float64(sum%10000)/100          // 10.00 .. 109.99
	change := float64(int32(sum>>16)%200-100) / 100 // -1.00 .. 0.99
	return Quote{
		Code:          code,
		Name:          fmt.Sprintf("股票%s", code),
		Price:         stockledger.M(price),
		Change:        stockledger.M(change),
		ChangePercent: stockledger.Percent(change / price * 100),
		Time:          m.now(),
	}
}
