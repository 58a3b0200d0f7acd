package stockledger

import "sort"

// UserProfit is the lifetime cash-flow of one user, across all stocks.
//
// RealizedPL is not inventory-matched: it is all money received selling minus
// all money spent buying, so it only equals true realized profit once every
// position is fully exited. While positions remain open it mixes realized and
// unrealized economics; callers combine it with open-position market value to
// approximate total return.
type UserProfit struct {
	UserID           string
	TotalBuyAmount   Money // gross, fee-exclusive
	TotalSellAmount  Money // gross, fee-exclusive
	TotalBuyFees     Money
	TotalSellFees    Money
	TotalFees        Money // TotalBuyFees + TotalSellFees
	RealizedPL       Money // TotalSellAmount - TotalBuyAmount
	NetRealizedPL    Money // RealizedPL - TotalFees
	TransactionCount int
}

// StockProfit is the lifetime cash-flow of one stock, across all users.
// Same shape as UserProfit, plus per-side quantities and average prices.
type StockProfit struct {
	StockCode         string
	StockName         string
	TotalBuyAmount    Money
	TotalSellAmount   Money
	TotalBuyQuantity  Quantity
	TotalSellQuantity Quantity
	AvgBuyPrice       Money // TotalBuyAmount / TotalBuyQuantity, zero when no buys
	AvgSellPrice      Money // TotalSellAmount / TotalSellQuantity, zero when no sells
	TotalBuyFees      Money
	TotalSellFees     Money
	TotalFees         Money
	RealizedPL        Money
	NetRealizedPL     Money
	TransactionCount  int
}

// ComputeUserProfits accumulates gross amounts and fees per user.
// Transaction order is irrelevant; the result is sorted by user id.
func ComputeUserProfits(transactions []Transaction) []UserProfit {
	byUser := make(map[string]*UserProfit)

	for _, tx := range transactions {
		profit, ok := byUser[tx.UserID]
		if !ok {
			profit = &UserProfit{UserID: tx.UserID}
			byUser[tx.UserID] = profit
		}
		profit.TransactionCount++

		amount := tx.Amount()
		fees := feeTotal(amount, tx.Type)
		switch tx.Type {
		case Buy:
			profit.TotalBuyAmount = profit.TotalBuyAmount.Add(amount)
			profit.TotalBuyFees = profit.TotalBuyFees.Add(fees)
		case Sell:
			profit.TotalSellAmount = profit.TotalSellAmount.Add(amount)
			profit.TotalSellFees = profit.TotalSellFees.Add(fees)
		}
	}

	profits := make([]UserProfit, 0, len(byUser))
	for _, profit := range byUser {
		profit.RealizedPL = profit.TotalSellAmount.Sub(profit.TotalBuyAmount)
		profit.TotalFees = profit.TotalBuyFees.Add(profit.TotalSellFees)
		profit.NetRealizedPL = profit.RealizedPL.Sub(profit.TotalFees)
		profits = append(profits, *profit)
	}
	sort.Slice(profits, func(i, j int) bool { return profits[i].UserID < profits[j].UserID })
	return profits
}

// ComputeStockProfits accumulates gross amounts, quantities and fees per
// stock code, across all users. The result is sorted by stock code.
func ComputeStockProfits(transactions []Transaction) []StockProfit {
	byStock := make(map[string]*StockProfit)

	for _, tx := range transactions {
		profit, ok := byStock[tx.StockCode]
		if !ok {
			profit = &StockProfit{StockCode: tx.StockCode, StockName: tx.StockName}
			byStock[tx.StockCode] = profit
		}
		profit.TransactionCount++

		amount := tx.Amount()
		fees := feeTotal(amount, tx.Type)
		switch tx.Type {
		case Buy:
			profit.TotalBuyAmount = profit.TotalBuyAmount.Add(amount)
			profit.TotalBuyQuantity = profit.TotalBuyQuantity.Add(tx.Quantity)
			profit.TotalBuyFees = profit.TotalBuyFees.Add(fees)
		case Sell:
			profit.TotalSellAmount = profit.TotalSellAmount.Add(amount)
			profit.TotalSellQuantity = profit.TotalSellQuantity.Add(tx.Quantity)
			profit.TotalSellFees = profit.TotalSellFees.Add(fees)
		}
	}

	profits := make([]StockProfit, 0, len(byStock))
	for _, profit := range byStock {
		if profit.TotalBuyQuantity.IsPositive() {
			profit.AvgBuyPrice = profit.TotalBuyAmount.Div(profit.TotalBuyQuantity)
		}
		if profit.TotalSellQuantity.IsPositive() {
			profit.AvgSellPrice = profit.TotalSellAmount.Div(profit.TotalSellQuantity)
		}
		profit.RealizedPL = profit.TotalSellAmount.Sub(profit.TotalBuyAmount)
		profit.TotalFees = profit.TotalBuyFees.Add(profit.TotalSellFees)
		profit.NetRealizedPL = profit.RealizedPL.Sub(profit.TotalFees)
		profits = append(profits, *profit)
	}
	sort.Slice(profits, func(i, j int) bool { return profits[i].StockCode < profits[j].StockCode })
	return profits
}

// OverallStats are whole-ledger totals across all users and stocks.
type OverallStats struct {
	TotalInvestment  Money // sum of buy amounts, gross
	TotalReturn      Money // sum of sell amounts, gross
	TotalFees        Money
	TotalProfit      Money // TotalReturn - TotalInvestment
	ProfitRate       Percent
	TransactionCount int
}

// ComputeOverallStats totals the whole transaction history.
func ComputeOverallStats(transactions []Transaction) OverallStats {
	var stats OverallStats
	stats.TransactionCount = len(transactions)
	for _, tx := range transactions {
		amount := tx.Amount()
		stats.TotalFees = stats.TotalFees.Add(feeTotal(amount, tx.Type))
		switch tx.Type {
		case Buy:
			stats.TotalInvestment = stats.TotalInvestment.Add(amount)
		case Sell:
			stats.TotalReturn = stats.TotalReturn.Add(amount)
		}
	}
	stats.TotalProfit = stats.TotalReturn.Sub(stats.TotalInvestment)
	if stats.TotalInvestment.IsPositive() {
		rate := stats.TotalProfit.Decimal().Div(stats.TotalInvestment.Decimal())
		stats.ProfitRate = Percent(rate.InexactFloat64() * 100)
	}
	return stats
}
