package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	stockledger "github.com/jwen/stockledger"
)

// UserProfitsMarkdown renders the per-user profit summary.
func UserProfitsMarkdown(profits []stockledger.UserProfit, names NameResolver) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("用户盈亏")
	if len(profits) == 0 {
		doc.PlainText("账本为空。")
		return doc.String()
	}

	rows := make([][]string, 0, len(profits))
	for _, p := range profits {
		rows = append(rows, []string{
			resolve(names, p.UserID),
			p.TotalBuyAmount.Round2().String(),
			p.TotalSellAmount.Round2().String(),
			p.TotalFees.Round2().String(),
			p.RealizedPL.Round2().SignedString(),
			p.NetRealizedPL.Round2().SignedString(),
			fmt.Sprint(p.TransactionCount),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"用户", "买入总额", "卖出总额", "费用", "盈亏", "净盈亏", "笔数"},
		Rows:   rows,
	})
	return doc.String()
}

// StockProfitsMarkdown renders the per-stock profit summary.
func StockProfitsMarkdown(profits []stockledger.StockProfit) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("个股盈亏")
	if len(profits) == 0 {
		doc.PlainText("账本为空。")
		return doc.String()
	}

	rows := make([][]string, 0, len(profits))
	for _, p := range profits {
		rows = append(rows, []string{
			p.StockCode,
			p.StockName,
			p.TotalBuyQuantity.String(),
			p.TotalSellQuantity.String(),
			avg(p.AvgBuyPrice),
			avg(p.AvgSellPrice),
			p.TotalFees.Round2().String(),
			p.NetRealizedPL.Round2().SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"代码", "名称", "买入数量", "卖出数量", "买入均价", "卖出均价", "费用", "净盈亏"},
		Rows:   rows,
	})
	return doc.String()
}

func avg(m stockledger.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.Round2().Decimal().String()
}

// MonthlyMarkdown renders per-month activity, most recent first.
func MonthlyMarkdown(stats []stockledger.MonthlyStat) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("月度统计")
	if len(stats) == 0 {
		doc.PlainText("账本为空。")
		return doc.String()
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Month,
			fmt.Sprintf("%d / %d", s.BuyCount, s.SellCount),
			s.BuyAmount.Round2().String(),
			s.SellAmount.Round2().String(),
			s.NetAmount.Round2().SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"月份", "买/卖笔数", "买入金额", "卖出金额", "净流入"},
		Rows:   rows,
	})
	return doc.String()
}

// SummaryMarkdown renders the whole-ledger totals.
func SummaryMarkdown(stats stockledger.OverallStats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("账本总览")
	doc.Table(md.TableSet{
		Header: []string{"指标", "数值"},
		Rows: [][]string{
			{"总投入", stats.TotalInvestment.Round2().String()},
			{"总回收", stats.TotalReturn.Round2().String()},
			{"总费用", stats.TotalFees.Round2().String()},
			{"总盈亏", stats.TotalProfit.Round2().SignedString()},
			{"收益率", stats.ProfitRate.SignedString()},
			{"交易笔数", fmt.Sprint(stats.TransactionCount)},
		},
	})
	return doc.String()
}
