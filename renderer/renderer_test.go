package renderer

import (
	"strings"
	"testing"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/analytics"
	"github.com/jwen/stockledger/date"
)

func sampleTransactions() []stockledger.Transaction {
	return []stockledger.Transaction{
		stockledger.NewBuy("u1", "000001", "平安银行", stockledger.Q(1000), stockledger.M(12.50), date.MustParse("2024-01-15")),
		stockledger.NewSell("u1", "000001", "平安银行", stockledger.Q(500), stockledger.M(13.20), date.MustParse("2024-03-02")),
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	names := func(id string) string { return map[string]string{"u1": "alice"}[id] }
	out := TransactionsMarkdown(sampleTransactions(), names)

	for _, want := range []string{"# 交易记录", "alice", "000001", "平安银行", "买入", "卖出", "共 2 笔交易"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "u1") {
		t.Errorf("user id should be resolved to a name:\n%s", out)
	}
}

func TestTransactionsMarkdown_Empty(t *testing.T) {
	out := TransactionsMarkdown(nil, nil)
	if !strings.Contains(out, "账本为空") {
		t.Errorf("empty report = %q", out)
	}
}

func TestPositionsMarkdown(t *testing.T) {
	positions := stockledger.ComputePositions(sampleTransactions())
	out := PositionsMarkdown(positions, nil)

	for _, want := range []string{"# 当前持仓", "000001", "总成本"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
	// Without quotes the market columns show a dash.
	if !strings.Contains(out, " - ") {
		t.Errorf("unquoted position should render dashes:\n%s", out)
	}

	quoted := make([]stockledger.Position, len(positions))
	for i, pos := range positions {
		quoted[i] = pos.WithQuote(stockledger.M(13.25))
	}
	out = PositionsMarkdown(quoted, nil)
	if strings.Contains(out, " - ") {
		t.Errorf("quoted position should fill market columns:\n%s", out)
	}
}

func TestUserProfitsMarkdown(t *testing.T) {
	profits := stockledger.ComputeUserProfits(sampleTransactions())
	out := UserProfitsMarkdown(profits, nil)
	for _, want := range []string{"# 用户盈亏", "u1"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
}

func TestStockProfitsMarkdown(t *testing.T) {
	profits := stockledger.ComputeStockProfits(sampleTransactions())
	out := StockProfitsMarkdown(profits)
	for _, want := range []string{"# 个股盈亏", "000001", "12.5", "13.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
}

func TestMonthlyMarkdown(t *testing.T) {
	stats := stockledger.ComputeMonthlyStats(sampleTransactions())
	out := MonthlyMarkdown(stats)
	for _, want := range []string{"# 月度统计", "2024-03", "2024-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
	// Most recent month first.
	if strings.Index(out, "2024-03") > strings.Index(out, "2024-01") {
		t.Errorf("months should be in descending order:\n%s", out)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	stats := stockledger.ComputeOverallStats(sampleTransactions())
	out := SummaryMarkdown(stats)
	for _, want := range []string{"# 账本总览", "总投入", "收益率"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
}

func TestAnalyticsMarkdown(t *testing.T) {
	positions := []stockledger.Position{
		{StockCode: "000001", StockName: "平安银行", Quantity: stockledger.Q(100), Cost: stockledger.M(8000)},
		{StockCode: "600519", StockName: "贵州茅台", Quantity: stockledger.Q(10), Cost: stockledger.M(2000)},
	}
	c := analytics.ComputeConcentration(positions)
	d := analytics.ComputeDiversification(positions)
	out := AnalyticsMarkdown(c, d)
	for _, want := range []string{"# 组合分析", "集中度", "多元化", "000001"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
}
