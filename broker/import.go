package broker

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	stockledger "github.com/jwen/stockledger"
	"github.com/jwen/stockledger/date"
	"github.com/jwen/stockledger/store"
)

// Result is the outcome of converting one CSV export.
type Result struct {
	Transactions []stockledger.Transaction
	// Errors holds one human-readable message per rejected row. Rows fail
	// independently; a bad row never aborts the rest of the file.
	Errors []string

	Broker     string
	Confidence float64
	Total      int // data rows seen, valid or not
}

// Import parses a broker CSV export and converts it into transactions owned
// by the given user. When brokerName is empty the template is auto-detected
// from the header row.
func Import(r io.Reader, userID, brokerName string) (*Result, error) {
	headers, rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}

	var detection Detection
	if brokerName == "" {
		detection = Detect(headers)
	} else {
		tpl, ok := ByName(brokerName)
		if !ok {
			return nil, fmt.Errorf("unknown broker: %q", brokerName)
		}
		detection = Detection{Template: tpl, Confidence: 1}
	}

	result := &Result{
		Broker:     detection.Template.Broker,
		Confidence: detection.Confidence,
		Total:      len(rows),
	}
	for i, row := range rows {
		// Row numbers are 1-based and count the header line, matching what
		// the user sees in a spreadsheet.
		rowNum := i + 2
		tx, err := convertRow(headers, row, detection.Template, userID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: %v", rowNum, err))
			continue
		}
		if err := tx.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: %v", rowNum, err))
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	return result, nil
}

// SaveSummary reports what happened to each imported transaction.
type SaveSummary struct {
	Saved      int
	Duplicates int
}

// Save adds imported transactions to the store, skipping rows that duplicate
// an already stored trade (same user, code, side, quantity, price, date).
func Save(s store.TransactionStore, txs []stockledger.Transaction) (SaveSummary, error) {
	var summary SaveSummary
	for _, tx := range txs {
		dup, err := store.FindDuplicate(s, tx)
		if err != nil {
			return summary, err
		}
		if dup != nil {
			summary.Duplicates++
			continue
		}
		if err := s.AddTransaction(tx); err != nil {
			return summary, err
		}
		summary.Saved++
	}
	return summary, nil
}

// parseCSV reads the whole file: a header row and zero or more data rows,
// each returned as a header->value map. Ragged rows are tolerated; missing
// cells read as empty strings.
func parseCSV(r io.Reader) (headers []string, rows []map[string]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("empty CSV file")
	}

	headers = records[0]
	// Broker exports from Windows tools often start with a UTF-8 BOM.
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(headers[i], "\ufeff"))
	}
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			var value string
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[header] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return headers, rows, nil
}

func convertRow(headers []string, row map[string]string, tpl Template, userID string) (stockledger.Transaction, error) {
	tx := stockledger.NewBuy(userID, "", "", stockledger.Q(0), stockledger.M(0), date.Date{})
	tx.Type = ""
	tx.Notes = "导入数据"

	for _, header := range headers {
		field, ok := tpl.Columns[header]
		value := row[header]
		if !ok || value == "" {
			continue
		}
		var err error
		switch field {
		case FieldDate:
			tx.Date, err = parseImportDate(value)
		case FieldStockCode:
			tx.StockCode = normalizeCode(value)
		case FieldStockName:
			tx.StockName = value
		case FieldType:
			side, ok := tpl.Types[value]
			if !ok {
				side, ok = tpl.Types[strings.ToLower(value)]
			}
			if !ok {
				err = fmt.Errorf("unknown trade side %q", value)
			}
			tx.Type = side
		case FieldPrice:
			var price decimal.Decimal
			price, err = parseNumber(value)
			tx.Price = stockledger.M(price)
		case FieldQuantity:
			var quantity decimal.Decimal
			quantity, err = parseNumber(value)
			tx.Quantity = stockledger.Q(quantity.Abs())
		case FieldAmount, FieldFee, FieldTax, FieldTransfer, FieldTotal:
			// Present in broker files but recomputed from quantity, price
			// and the fee schedule; only validated as numbers here.
			_, err = parseNumber(value)
		}
		if err != nil {
			return tx, fmt.Errorf("%s: %w", header, err)
		}
	}
	return tx, nil
}

var nonDigits = regexp.MustCompile(`\D`)

// normalizeCode strips everything but digits and left-pads to the 6-digit
// exchange format, so "SZ000001" and "1" both become valid codes.
func normalizeCode(value string) string {
	digits := nonDigits.ReplaceAllString(value, "")
	if len(digits) > 6 {
		digits = digits[len(digits)-6:]
	}
	for len(digits) < 6 {
		digits = "0" + digits
	}
	return digits
}

// parseNumber parses a decimal, tolerating ASCII and full-width thousands
// separators.
func parseNumber(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "，", "").Replace(value)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q", value)
	}
	return d, nil
}

// parseImportDate accepts the date formats seen across broker exports:
// YYYYMMDD, YYYY-MM-DD and YYYY/MM/DD, each optionally followed by a
// time of day, which is discarded.
func parseImportDate(value string) (date.Date, error) {
	day := value
	if i := strings.IndexAny(day, " \t"); i >= 0 {
		day = day[:i]
	}
	day = strings.ReplaceAll(day, "/", "-")
	if len(day) == 8 && !strings.Contains(day, "-") {
		day = day[:4] + "-" + day[4:6] + "-" + day[6:]
	}
	d, err := date.Parse(day)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q", value)
	}
	return d, nil
}
