package stockledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jwen/stockledger/date"
)

// Position is the derived holding of one user in one stock. It is a value
// object: recomputed from scratch on every call, never stored.
type Position struct {
	UserID    string
	StockCode string
	StockName string
	Quantity  Quantity // net shares held, always > 0 in engine output
	Cost      Money    // cost basis, fee-inclusive
	Fees      Money    // acquisition fees still attributed to the open position
	AvgPrice  Money    // Cost / Quantity

	// Market fields, joined in by the caller when a quote is available.
	// They are nil when no price is known; computations degrade gracefully
	// instead of failing.
	CurrentPrice *Money
	MarketValue  *Money
	UnrealizedPL *Money
}

// Key identifies a position: one user's holding of one stock.
func (p Position) Key() string { return p.UserID + "/" + p.StockCode }

// WithQuote returns a copy of the position with market fields filled in
// from the given price.
func (p Position) WithQuote(price Money) Position {
	value := price.Mul(p.Quantity)
	pl := value.Sub(p.Cost)
	p.CurrentPrice = &price
	p.MarketValue = &value
	p.UnrealizedPL = &pl
	return p
}

// OversoldError reports a sell of more shares than held. The default engine
// silently closes the position instead (matching the historical behavior);
// strict mode surfaces this error so data-integrity issues are not mistaken
// for clean exits.
type OversoldError struct {
	UserID    string
	StockCode string
	Date      date.Date
	Held      Quantity
	Sold      Quantity
}

func (e *OversoldError) Error() string {
	return fmt.Sprintf("on %s, user %s sold %s of %s but held only %s",
		e.Date, e.UserID, e.Sold, e.StockCode, e.Held)
}

// EngineOptions configures the position engine.
type EngineOptions struct {
	// Strict makes the engine fail with an OversoldError when a sell exceeds
	// the held quantity, instead of silently closing the position.
	Strict bool
}

// ComputePositions folds the transactions into weighted-average-cost
// positions, one per (user, stock) pair with a strictly positive quantity.
//
// Transactions are processed in chronological order, ties broken by input
// order. A buy adds quantity×price plus its fees to the cost basis; a partial
// sell scales cost and fees down proportionally; a sell that brings the
// quantity to zero or below removes the position. Sell-side fees never touch
// the remaining cost basis, they only show up in profit figures.
func ComputePositions(transactions []Transaction) []Position {
	positions, _ := ComputePositionsWith(transactions, EngineOptions{})
	return positions
}

// ComputePositionsWith is ComputePositions with explicit options. With the
// zero options it never returns an error.
func ComputePositionsWith(transactions []Transaction, opts EngineOptions) ([]Position, error) {
	type key struct{ user, code string }

	ordered := chronological(transactions)
	open := make(map[key]*Position)

	for _, tx := range ordered {
		k := key{tx.UserID, tx.StockCode}
		pos, ok := open[k]
		if !ok {
			pos = &Position{UserID: tx.UserID, StockCode: tx.StockCode, StockName: tx.StockName}
			open[k] = pos
		}

		switch tx.Type {
		case Buy:
			fees := feeTotal(tx.Amount(), Buy)
			pos.Cost = pos.Cost.Add(tx.Amount()).Add(fees)
			pos.Fees = pos.Fees.Add(fees)
			pos.Quantity = pos.Quantity.Add(tx.Quantity)
			pos.AvgPrice = pos.Cost.Div(pos.Quantity)

		case Sell:
			before := pos.Quantity
			pos.Quantity = pos.Quantity.Sub(tx.Quantity)
			if !pos.Quantity.IsPositive() {
				if opts.Strict && pos.Quantity.IsNegative() {
					return nil, &OversoldError{
						UserID:    tx.UserID,
						StockCode: tx.StockCode,
						Date:      tx.Date,
						Held:      before,
						Sold:      tx.Quantity,
					}
				}
				delete(open, k)
				continue
			}
			// Partial sell: scale the remaining cost basis down by the sold
			// share of the pre-sell quantity. Sell-side fees are deliberately
			// not deducted here.
			remaining := decimal.NewFromInt(1).Sub(tx.Quantity.Ratio(before))
			pos.Cost = pos.Cost.Scale(remaining)
			pos.Fees = pos.Fees.Scale(remaining)
			pos.AvgPrice = pos.Cost.Div(pos.Quantity)
		}
	}

	positions := make([]Position, 0, len(open))
	for _, pos := range open {
		positions = append(positions, *pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].UserID != positions[j].UserID {
			return positions[i].UserID < positions[j].UserID
		}
		return positions[i].StockCode < positions[j].StockCode
	})
	return positions, nil
}

// chronological returns a copy of the transactions stable-sorted by date,
// preserving input order within a day.
func chronological(transactions []Transaction) []Transaction {
	ordered := make([]Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
