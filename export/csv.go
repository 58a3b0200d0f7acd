// Package export writes ledger data out: CSV files for spreadsheets and a
// JSON backup format that restores losslessly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	stockledger "github.com/jwen/stockledger"
)

// Transactions writes the transactions as CSV, one row per trade, with the
// computed fee total as the last column.
func Transactions(w io.Writer, txs []stockledger.Transaction) error {
	cw := csv.NewWriter(w)
	header := []string{"日期", "用户", "股票代码", "股票名称", "类型", "数量", "价格", "金额", "费用", "备注"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write transactions CSV: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date.String(),
			tx.UserID,
			tx.StockCode,
			tx.StockName,
			string(tx.Type),
			tx.Quantity.String(),
			tx.Price.Decimal().String(),
			tx.Amount().Round2().Decimal().String(),
			tx.Fees().Total.Decimal().String(),
			tx.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write transactions CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Positions writes the open positions as CSV. Market value columns are
// filled only for positions that carry a quote; the others stay empty
// rather than zero, so a spreadsheet does not mistake "unknown" for "0".
func Positions(w io.Writer, positions []stockledger.Position) error {
	cw := csv.NewWriter(w)
	header := []string{"用户", "股票代码", "股票名称", "持仓数量", "成本", "均价", "现价", "市值", "浮动盈亏"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write positions CSV: %w", err)
	}
	for _, pos := range positions {
		row := []string{
			pos.UserID,
			pos.StockCode,
			pos.StockName,
			pos.Quantity.String(),
			pos.Cost.Round2().Decimal().String(),
			pos.AvgPrice.Round2().Decimal().String(),
			optionalMoney(pos.CurrentPrice),
			optionalMoney(pos.MarketValue),
			optionalMoney(pos.UnrealizedPL),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write positions CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// UserProfits writes the per-user profit summaries as CSV.
func UserProfits(w io.Writer, profits []stockledger.UserProfit) error {
	cw := csv.NewWriter(w)
	header := []string{"用户", "买入总额", "卖出总额", "总费用", "盈亏", "净盈亏", "交易笔数"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write profits CSV: %w", err)
	}
	for _, p := range profits {
		row := []string{
			p.UserID,
			p.TotalBuyAmount.Round2().Decimal().String(),
			p.TotalSellAmount.Round2().Decimal().String(),
			p.TotalFees.Round2().Decimal().String(),
			p.RealizedPL.Round2().Decimal().String(),
			p.NetRealizedPL.Round2().Decimal().String(),
			fmt.Sprint(p.TransactionCount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write profits CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func optionalMoney(m *stockledger.Money) string {
	if m == nil {
		return ""
	}
	return m.Round2().Decimal().String()
}
