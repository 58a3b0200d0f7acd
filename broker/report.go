package broker

import (
	"encoding/csv"
	"fmt"
	"io"
)

// genericHeaders is the column order of the generated sample file.
var genericHeaders = []string{
	"交易日期", "股票代码", "股票名称", "交易类型(buy/sell)",
	"成交价格", "成交数量", "成交金额", "手续费", "印花税",
}

// WriteTemplate writes a sample CSV in the generic layout for users to fill
// in by hand when their broker is not recognized.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		genericHeaders,
		{"2024-01-15", "000001", "平安银行", "buy", "10.50", "1000", "10500.00", "5.25", "0.00"},
		{"2024-01-16", "000001", "平安银行", "sell", "11.20", "500", "5600.00", "2.80", "5.60"},
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("could not write template: %w", err)
	}
	return nil
}

// WriteErrorReport writes the rejected rows of an import as a CSV the user
// can fix up and re-import.
func WriteErrorReport(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"错误"}); err != nil {
		return fmt.Errorf("could not write error report: %w", err)
	}
	for _, msg := range result.Errors {
		if err := cw.Write([]string{msg}); err != nil {
			return fmt.Errorf("could not write error report: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
