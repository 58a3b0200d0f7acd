package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/jwen/stockledger/analytics"
)

// AnalyticsMarkdown renders concentration and diversification figures.
func AnalyticsMarkdown(c analytics.Concentration, d analytics.Diversification) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("组合分析")

	doc.H2("集中度")
	if len(c.Holdings) == 0 {
		doc.PlainText("暂无持仓。")
	} else {
		top := c.Holdings
		if len(top) > 5 {
			top = top[:5]
		}
		rows := make([][]string, 0, len(top))
		for _, h := range top {
			rows = append(rows, []string{h.StockCode, h.StockName, fmt.Sprintf("%.2f", h.Value), h.Weight.String()})
		}
		doc.Table(md.TableSet{
			Header: []string{"代码", "名称", "市值", "权重"},
			Rows:   rows,
		})
		doc.PlainText(fmt.Sprintf("前三大持仓权重 %s，赫芬达尔指数 %.0f，集中度风险 %s",
			c.Top3Weight, c.Herfindahl, c.Risk))
	}

	doc.H2("多元化")
	doc.PlainText(fmt.Sprintf("持仓品种 %d，多元化评分 %.1f（%s）", d.StockCount, d.Score, d.Level))
	if d.Recommendation != "" {
		doc.PlainText(d.Recommendation)
	}
	return doc.String()
}
