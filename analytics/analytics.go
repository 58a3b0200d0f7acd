// Package analytics derives portfolio-level risk figures from open
// positions: holding weights, concentration, diversification. Everything is
// a pure function over positions; market value is used when a quote has
// been joined in and cost basis otherwise, so the analysis degrades
// gracefully offline.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	stockledger "github.com/jwen/stockledger"
)

// RiskLevel buckets a concentration figure.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Holding is one position's share of the portfolio.
type Holding struct {
	StockCode string
	StockName string
	Value     float64
	Weight    stockledger.Percent
}

// Concentration summarizes how lopsided the portfolio is.
type Concentration struct {
	// Holdings sorted by value, largest first.
	Holdings   []Holding
	Top3Weight stockledger.Percent
	Top5Weight stockledger.Percent
	Risk       RiskLevel
	// Herfindahl is the sum of squared weights scaled to 0..10000;
	// 10000 means a single holding.
	Herfindahl float64
	// WeightStdDev is the standard deviation of the holding weights in
	// percent points; 0 means a perfectly even book.
	WeightStdDev float64
}

// positionValue is the market value when a quote is joined, cost otherwise.
func positionValue(pos stockledger.Position) float64 {
	if pos.MarketValue != nil {
		return pos.MarketValue.AsFloat()
	}
	return pos.Cost.AsFloat()
}

// ComputeConcentration computes holding weights and concentration risk.
// Risk is high when the top 3 holdings exceed 60% of the book, medium
// above 40%.
func ComputeConcentration(positions []stockledger.Position) Concentration {
	var c Concentration
	if len(positions) == 0 {
		c.Risk = RiskLow
		return c
	}

	total := 0.0
	for _, pos := range positions {
		total += positionValue(pos)
	}

	weights := make([]float64, 0, len(positions))
	for _, pos := range positions {
		value := positionValue(pos)
		weight := 0.0
		if total > 0 {
			weight = value / total * 100
		}
		weights = append(weights, weight)
		c.Holdings = append(c.Holdings, Holding{
			StockCode: pos.StockCode,
			StockName: pos.StockName,
			Value:     value,
			Weight:    stockledger.Percent(weight),
		})
	}
	sort.Slice(c.Holdings, func(i, j int) bool { return c.Holdings[i].Value > c.Holdings[j].Value })

	for i, h := range c.Holdings {
		if i < 3 {
			c.Top3Weight += h.Weight
		}
		if i < 5 {
			c.Top5Weight += h.Weight
		}
		// With weights in percent points, Σw² lands on the usual
		// 0..10000 HHI scale directly.
		w := float64(h.Weight)
		c.Herfindahl += w * w
	}

	switch {
	case c.Top3Weight > 60:
		c.Risk = RiskHigh
	case c.Top3Weight > 40:
		c.Risk = RiskMedium
	default:
		c.Risk = RiskLow
	}

	if len(weights) > 1 {
		c.WeightStdDev = stat.StdDev(weights, nil)
	}
	return c
}

// DiversificationLevel labels a diversification score.
type DiversificationLevel string

const (
	DiversificationNone      DiversificationLevel = "none"
	DiversificationVeryPoor  DiversificationLevel = "very poor"
	DiversificationPoor      DiversificationLevel = "poor"
	DiversificationFair      DiversificationLevel = "fair"
	DiversificationGood      DiversificationLevel = "good"
	DiversificationExcellent DiversificationLevel = "excellent"
)

// Diversification scores how spread out the portfolio is, 0..100, from the
// number of distinct holdings.
type Diversification struct {
	Score          float64
	Level          DiversificationLevel
	StockCount     int
	Recommendation string
}

// ComputeDiversification scores the holding count on a 0..100 scale.
func ComputeDiversification(positions []stockledger.Position) Diversification {
	count := len(positions)
	d := Diversification{StockCount: count}

	switch {
	case count == 0:
		d.Level = DiversificationNone
		return d
	case count >= 20:
		d.Score = 90 + float64(count-20)*0.5
		if d.Score > 100 {
			d.Score = 100
		}
		d.Level = DiversificationExcellent
	case count >= 15:
		d.Score = 80 + float64(count-15)*2
		d.Level = DiversificationGood
	case count >= 10:
		d.Score = 60 + float64(count-10)*4
		d.Level = DiversificationFair
	case count >= 5:
		d.Score = 30 + float64(count-5)*6
		d.Level = DiversificationPoor
	default:
		d.Score = float64(count) * 6
		d.Level = DiversificationVeryPoor
	}

	switch {
	case count < 5:
		d.Recommendation = "建议增加持仓品种，降低单一股票风险"
	case count < 10:
		d.Recommendation = "可以考虑增加更多不同行业的股票"
	case count < 15:
		d.Recommendation = "投资组合多样化程度良好"
	default:
		d.Recommendation = "投资组合已有良好的多样化，注意控制管理复杂度"
	}
	return d
}
