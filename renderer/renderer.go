// Package renderer turns computed ledger views into markdown reports.
// Markdown keeps the reports both pipeable (plain text) and pretty
// (rendered through glamour by the CLI).
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	stockledger "github.com/jwen/stockledger"
)

// NameResolver maps a user id to a display name. A nil resolver leaves ids
// as they are.
type NameResolver func(userID string) string

func resolve(r NameResolver, userID string) string {
	if r == nil {
		return userID
	}
	if name := r(userID); name != "" {
		return name
	}
	return userID
}

// TransactionsMarkdown renders a transaction listing.
func TransactionsMarkdown(txs []stockledger.Transaction, names NameResolver) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("交易记录")
	if len(txs) == 0 {
		doc.PlainText("账本为空。")
		return doc.String()
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.String(),
			resolve(names, tx.UserID),
			tx.StockCode,
			tx.StockName,
			sideLabel(tx.Type),
			tx.Quantity.String(),
			tx.Price.Decimal().String(),
			tx.Amount().Round2().String(),
			tx.Fees().Total.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"日期", "用户", "代码", "名称", "方向", "数量", "价格", "金额", "费用"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("共 %d 笔交易", len(txs)))
	return doc.String()
}

func sideLabel(side stockledger.TradeType) string {
	switch side {
	case stockledger.Buy:
		return "买入"
	case stockledger.Sell:
		return "卖出"
	default:
		return string(side)
	}
}
