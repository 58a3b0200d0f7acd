package stockledger

import "github.com/shopspring/decimal"

// This file keeps the first generation of the calculation engine around.
// Early ledger exports were produced with it, and re-deriving their figures
// requires its exact arithmetic: positions and profits are accumulated over
// fee-inclusive net amounts, partial sells reduce cost by quantity×avgPrice
// instead of scaling, and a management fee is charged on positive profit.
// New code uses ComputePositions and ComputeUserProfits.

// DefaultManagementFeeRate is the share of positive profit charged as a
// management fee by the legacy profit calculation.
var DefaultManagementFeeRate = decimal.NewFromFloat(0.1)

// LegacyUserProfit is the per-user summary of the legacy calculation.
//
// Deprecated: figures are net-amount based and include a management fee;
// use UserProfit for the current fee-transparent summary.
type LegacyUserProfit struct {
	UserID          string
	TotalInvestment Money // sum of buy net amounts, fee-inclusive
	TotalReturn     Money // sum of sell net amounts, fees already deducted
	TotalProfit     Money // TotalReturn - TotalInvestment
	ProfitRate      Percent
	ManagementFee   Money // charged only when TotalProfit > 0
	NetProfit       Money // TotalProfit - ManagementFee
}

// ComputeLegacyUserProfits reproduces the original per-user profit figures:
// cash flows are net amounts, and a management fee is deducted from any
// positive profit. The result is sorted by user id.
//
// Deprecated: use ComputeUserProfits.
func ComputeLegacyUserProfits(transactions []Transaction, managementFeeRate decimal.Decimal) []LegacyUserProfit {
	byUser := make(map[string]*LegacyUserProfit)
	var order []string

	for _, tx := range transactions {
		profit, ok := byUser[tx.UserID]
		if !ok {
			profit = &LegacyUserProfit{UserID: tx.UserID}
			byUser[tx.UserID] = profit
			order = append(order, tx.UserID)
		}
		switch tx.Type {
		case Buy:
			profit.TotalInvestment = profit.TotalInvestment.Add(tx.NetAmount())
		case Sell:
			profit.TotalReturn = profit.TotalReturn.Add(tx.NetAmount())
		}
	}

	profits := make([]LegacyUserProfit, 0, len(byUser))
	for _, id := range order {
		profit := byUser[id]
		profit.TotalProfit = profit.TotalReturn.Sub(profit.TotalInvestment)
		if profit.TotalInvestment.IsPositive() {
			rate := profit.TotalProfit.Decimal().Div(profit.TotalInvestment.Decimal())
			profit.ProfitRate = Percent(rate.InexactFloat64() * 100)
		}
		if profit.TotalProfit.IsPositive() {
			profit.ManagementFee = profit.TotalProfit.Scale(managementFeeRate)
		}
		profit.NetProfit = profit.TotalProfit.Sub(profit.ManagementFee)
		profits = append(profits, *profit)
	}
	return profits
}

// ComputeLegacyPositions reproduces the original position calculation:
// the cost basis accumulates net amounts, and a partial sell reduces cost by
// sold quantity × average price instead of scaling it proportionally. The
// two engines agree on quantities but can diverge on cost after a partial
// sell, because this one leaves the per-share average unchanged while the
// current one keeps sell fees out of the remaining basis.
//
// Deprecated: use ComputePositions.
func ComputeLegacyPositions(transactions []Transaction) []Position {
	type key struct{ user, code string }

	open := make(map[key]*Position)
	var order []key

	for _, tx := range transactions {
		k := key{tx.UserID, tx.StockCode}
		pos, ok := open[k]
		if !ok {
			pos = &Position{UserID: tx.UserID, StockCode: tx.StockCode, StockName: tx.StockName}
			open[k] = pos
			order = append(order, k)
		}

		switch tx.Type {
		case Buy:
			pos.Cost = pos.Cost.Add(tx.NetAmount())
			pos.Quantity = pos.Quantity.Add(tx.Quantity)
			if pos.Quantity.IsPositive() {
				pos.AvgPrice = pos.Cost.Div(pos.Quantity)
			}
		case Sell:
			pos.Cost = pos.Cost.Sub(pos.AvgPrice.Mul(tx.Quantity))
			pos.Quantity = pos.Quantity.Sub(tx.Quantity)
		}
	}

	var positions []Position
	for _, k := range order {
		if pos := open[k]; pos.Quantity.IsPositive() {
			positions = append(positions, *pos)
		}
	}
	return positions
}
