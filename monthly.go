package stockledger

import "sort"

// MonthlyStat aggregates the trading activity of one calendar month.
type MonthlyStat struct {
	Month      string // "YYYY-MM", zero-padded
	BuyAmount  Money
	SellAmount Money
	BuyCount   int
	SellCount  int
	NetAmount  Money // SellAmount - BuyAmount
}

// ComputeMonthlyStats buckets transactions by calendar month, most recent
// month first. Amounts are gross (fee-exclusive), so the sum of BuyAmount
// over all months equals the sum of quantity×price over all buys.
func ComputeMonthlyStats(transactions []Transaction) []MonthlyStat {
	byMonth := make(map[string]*MonthlyStat)

	for _, tx := range transactions {
		key := tx.Date.MonthKey()
		stat, ok := byMonth[key]
		if !ok {
			stat = &MonthlyStat{Month: key}
			byMonth[key] = stat
		}
		amount := tx.Amount()
		switch tx.Type {
		case Buy:
			stat.BuyAmount = stat.BuyAmount.Add(amount)
			stat.BuyCount++
		case Sell:
			stat.SellAmount = stat.SellAmount.Add(amount)
			stat.SellCount++
		}
	}

	stats := make([]MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		stat.NetAmount = stat.SellAmount.Sub(stat.BuyAmount)
		stats = append(stats, *stat)
	}
	// Month keys are zero-padded, so lexicographic order is chronological.
	sort.Slice(stats, func(i, j int) bool { return stats[i].Month > stats[j].Month })
	return stats
}
