package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	stockledger "github.com/jwen/stockledger"
)

// PositionsMarkdown renders the open positions. Market columns show "-"
// for positions without a quote.
func PositionsMarkdown(positions []stockledger.Position, names NameResolver) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("当前持仓")
	if len(positions) == 0 {
		doc.PlainText("暂无持仓。")
		return doc.String()
	}

	rows := make([][]string, 0, len(positions))
	var totalCost stockledger.Money
	for _, pos := range positions {
		rows = append(rows, []string{
			resolve(names, pos.UserID),
			pos.StockCode,
			pos.StockName,
			pos.Quantity.String(),
			pos.AvgPrice.Round2().Decimal().String(),
			pos.Cost.Round2().String(),
			optional(pos.CurrentPrice),
			optional(pos.MarketValue),
			optionalSigned(pos.UnrealizedPL),
		})
		totalCost = totalCost.Add(pos.Cost)
	}
	doc.Table(md.TableSet{
		Header: []string{"用户", "代码", "名称", "数量", "均价", "成本", "现价", "市值", "浮动盈亏"},
		Rows:   rows,
	})
	doc.PlainText("总成本: " + totalCost.Round2().String())
	return doc.String()
}

func optional(m *stockledger.Money) string {
	if m == nil {
		return "-"
	}
	return m.Round2().String()
}

func optionalSigned(m *stockledger.Money) string {
	if m == nil {
		return "-"
	}
	return m.Round2().SignedString()
}
