// Package broker imports trade histories exported by Chinese brokerage
// apps. Each broker ships a slightly different CSV layout; declarative
// column templates map their headers onto transaction fields, and a scoring
// detector picks the right template from the header row alone.
package broker

import (
	"strings"

	stockledger "github.com/jwen/stockledger"
)

// Field names a transaction attribute a CSV column maps to.
type Field string

const (
	FieldDate      Field = "date"
	FieldStockCode Field = "stockCode"
	FieldStockName Field = "stockName"
	FieldType      Field = "type"
	FieldPrice     Field = "price"
	FieldQuantity  Field = "quantity"
	FieldAmount    Field = "amount"
	FieldFee       Field = "fee"
	FieldTax       Field = "tax"
	FieldTransfer  Field = "transferFee"
	FieldTotal     Field = "totalAmount"
)

// Template describes one broker's CSV layout.
type Template struct {
	Broker  string
	Columns map[string]Field // header text -> transaction field
	// Types maps the broker's trade-side labels onto buy/sell.
	Types map[string]stockledger.TradeType
}

// The known broker layouts. Amount and fee columns are recognized so their
// headers count toward detection, but fees are recomputed from the schedule
// rather than trusted from the file.
var (
	Huatai = Template{
		Broker: "华泰证券",
		Columns: map[string]Field{
			"成交日期": FieldDate,
			"证券代码": FieldStockCode,
			"证券名称": FieldStockName,
			"买卖标志": FieldType,
			"成交价格": FieldPrice,
			"成交数量": FieldQuantity,
			"成交金额": FieldAmount,
			"手续费":  FieldFee,
			"印花税":  FieldTax,
			"过户费":  FieldTransfer,
			"发生金额": FieldTotal,
		},
		Types: map[string]stockledger.TradeType{
			"买入": stockledger.Buy,
			"卖出": stockledger.Sell,
		},
	}

	Eastmoney = Template{
		Broker: "东方财富",
		Columns: map[string]Field{
			"成交时间": FieldDate,
			"证券代码": FieldStockCode,
			"证券名称": FieldStockName,
			"操作":   FieldType,
			"成交价格": FieldPrice,
			"成交数量": FieldQuantity,
			"成交金额": FieldAmount,
			"手续费":  FieldFee,
			"印花税":  FieldTax,
			"其他费用": FieldTransfer,
			"发生金额": FieldTotal,
		},
		Types: map[string]stockledger.TradeType{
			"买入":   stockledger.Buy,
			"卖出":   stockledger.Sell,
			"证券买入": stockledger.Buy,
			"证券卖出": stockledger.Sell,
		},
	}

	Tonghuashun = Template{
		Broker: "同花顺",
		Columns: map[string]Field{
			"日期":  FieldDate,
			"代码":  FieldStockCode,
			"名称":  FieldStockName,
			"方向":  FieldType,
			"价格":  FieldPrice,
			"数量":  FieldQuantity,
			"金额":  FieldAmount,
			"佣金":  FieldFee,
			"印花税": FieldTax,
			"过户费": FieldTransfer,
		},
		Types: map[string]stockledger.TradeType{
			"买入": stockledger.Buy,
			"卖出": stockledger.Sell,
		},
	}

	// Generic is the hand-filled layout the app documents for users whose
	// broker is not recognized. It is also the fallback template, applied
	// with zero confidence.
	Generic = Template{
		Broker: "通用模板",
		Columns: map[string]Field{
			"交易日期":           FieldDate,
			"股票代码":           FieldStockCode,
			"股票名称":           FieldStockName,
			"交易类型(buy/sell)": FieldType,
			"成交价格":           FieldPrice,
			"成交数量":           FieldQuantity,
			"成交金额":           FieldAmount,
			"手续费":            FieldFee,
			"印花税":            FieldTax,
		},
		Types: map[string]stockledger.TradeType{
			"buy":  stockledger.Buy,
			"sell": stockledger.Sell,
			"买入":   stockledger.Buy,
			"卖出":   stockledger.Sell,
			"b":    stockledger.Buy,
			"s":    stockledger.Sell,
		},
	}
)

// Templates lists the known broker layouts in detection order.
var Templates = []Template{Huatai, Eastmoney, Tonghuashun}

// Detection is the result of template auto-detection.
type Detection struct {
	Template Template
	// Confidence is the fraction of the template's headers present in the
	// file, 0 when falling back to the generic template.
	Confidence float64
}

// Detect picks the broker template matching the given CSV header row. A
// template matches when at least max(3, 60%) of its headers are present;
// otherwise the generic template is returned with zero confidence.
func Detect(headers []string) Detection {
	headerSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		headerSet[strings.TrimSpace(h)] = true
	}

	for _, tpl := range Templates {
		matches := 0
		for header := range tpl.Columns {
			if headerSet[header] {
				matches++
			}
		}
		// At least 3 headers, and at least 60% of the template (rounded up).
		threshold := 3
		if need := (len(tpl.Columns)*6 + 9) / 10; need > threshold {
			threshold = need
		}
		if matches >= threshold {
			return Detection{
				Template:   tpl,
				Confidence: float64(matches) / float64(len(tpl.Columns)),
			}
		}
	}
	return Detection{Template: Generic, Confidence: 0}
}

// ByName returns the template registered under the given broker name.
func ByName(name string) (Template, bool) {
	for _, tpl := range Templates {
		if tpl.Broker == name {
			return tpl, true
		}
	}
	if name == Generic.Broker || name == "generic" {
		return Generic, true
	}
	return Template{}, false
}
