// Package quote fetches stock prices. Providers are pluggable: a mock
// provider for offline use and tests, an HTTP provider for a real JSON
// endpoint, and decorators for caching and periodic refresh.
//
// Quotes are best-effort everywhere: a failed lookup leaves a position
// without market fields, it never fails a report.
package quote

import (
	"context"
	"strings"
	"sync"
	"time"

	stockledger "github.com/jwen/stockledger"
)

// Quote is a point-in-time price observation for one stock.
type Quote struct {
	Code          string
	Name          string
	Price         stockledger.Money
	Change        stockledger.Money
	ChangePercent stockledger.Percent
	Time          time.Time
}

// Provider fetches the current quote for a stock code.
type Provider interface {
	Price(ctx context.Context, code string) (Quote, error)
}

// Exchange returns the exchange prefix for a mainland code: "sh" for
// Shanghai (6xxxxx), "bj" for Beijing (8xxxxx), "sz" otherwise.
func Exchange(code string) string {
	switch {
	case strings.HasPrefix(code, "6"):
		return "sh"
	case strings.HasPrefix(code, "8"):
		return "bj"
	default:
		return "sz"
	}
}

// Batch fetches quotes for several codes concurrently, each with its own
// timeout. Failures are independent: a code that cannot be fetched is
// simply absent from the result.
func Batch(ctx context.Context, p Provider, codes []string, timeout time.Duration) map[string]Quote {
	var mu sync.Mutex
	quotes := make(map[string]Quote, len(codes))

	var wg sync.WaitGroup
	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			q, err := p.Price(reqCtx, code)
			if err != nil {
				return
			}
			mu.Lock()
			quotes[code] = q
			mu.Unlock()
		}(code)
	}
	wg.Wait()
	return quotes
}

// JoinPositions returns the positions with market fields filled in from the
// quotes; positions without a quote pass through unchanged.
func JoinPositions(positions []stockledger.Position, quotes map[string]Quote) []stockledger.Position {
	joined := make([]stockledger.Position, len(positions))
	for i, pos := range positions {
		if q, ok := quotes[pos.StockCode]; ok {
			joined[i] = pos.WithQuote(q.Price)
		} else {
			joined[i] = pos
		}
	}
	return joined
}
