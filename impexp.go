package stock

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ImportCSV reads transactions from a CSV export with the columns
// type,ticker,quantity,price,date[,fees,notes,stock_name,currency].
// Rows that cannot be parsed are skipped and reported as anomalies;
// a broken file never prevents importing the valid rows.
func ImportCSV(r io.Reader) ([]Transaction, []Anomaly, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var transactions []Transaction
	var anomalies []Anomaly
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: %v", line, err))
			continue
		}

		side, err := ParseSide(field(row, "type", "transaction_type", "side"))
		if err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: %v", line, err))
			continue
		}
		qty, err := decimal.NewFromString(field(row, "quantity"))
		if err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: bad quantity: %v", line, err))
			continue
		}
		price, err := decimal.NewFromString(field(row, "price"))
		if err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: bad price: %v", line, err))
			continue
		}
		fees := decimal.Zero
		if s := field(row, "fees"); s != "" {
			if fees, err = decimal.NewFromString(s); err != nil {
				anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: bad fees: %v", line, err))
				continue
			}
		}
		at := time.Now().UTC()
		if s := field(row, "date", "transaction_date"); s != "" {
			at, err = parseCSVDate(s)
			if err != nil {
				anomalies = append(anomalies, anomalyf(DataQuality, "", "skip CSV line %d: bad date: %v", line, err))
				continue
			}
		}
		currency := field(row, "currency")
		if currency == "" {
			currency = DefaultCurrency
		}

		tx, err := Transaction{
			Ticker:     field(row, "ticker"),
			Name:       field(row, "stock_name", "name"),
			Side:       side,
			Quantity:   Q(qty),
			UnitPrice:  M(price, currency),
			Fees:       M(fees, currency),
			OccurredAt: at,
			Memo:       field(row, "notes", "memo"),
		}.Validate()
		if err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, field(row, "ticker"), "skip CSV line %d: %v", line, err))
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, anomalies, nil
}

// parseCSVDate accepts a bare day or a full timestamp.
func parseCSVDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if at, err := time.Parse(layout, s); err == nil {
			return at.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q, expected YYYY-MM-DD or RFC3339", s)
}
