package stock

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// pricePointRecord is the persisted line format of a price history file.
type pricePointRecord struct {
	Date     string          `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

// DecodePriceHistory reads one ticker's JSONL price history and returns
// it sorted ascending by date.
func DecodePriceHistory(r io.Reader) (PriceSeries, error) {
	var series PriceSeries
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec pricePointRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode price point on line %d: %w", line, err)
		}
		at, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			return nil, fmt.Errorf("could not decode price date on line %d: %w", line, err)
		}
		if rec.Currency == "" {
			rec.Currency = DefaultCurrency
		}
		series = append(series, PricePoint{Time: at.UTC(), Price: M(rec.Price, rec.Currency)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading price history: %w", err)
	}
	return series.Sorted(), nil
}

// EncodePriceHistory persists a price series in JSONL form, ascending by
// date, one point per line.
func EncodePriceHistory(w io.Writer, series PriceSeries) error {
	for _, p := range series.Sorted() {
		rec := pricePointRecord{
			Date:  p.Time.UTC().Format("2006-01-02"),
			Price: p.Price.Decimal(),
		}
		if c := p.Price.Currency(); c != DefaultCurrency {
			rec.Currency = c
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal price point: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write price point: %w", err)
		}
	}
	return nil
}

// MergePriceHistory merges fresh points into an existing series, keeping
// one point per day (the fresh point wins) and ascending order.
func MergePriceHistory(existing, fresh PriceSeries) PriceSeries {
	byDay := make(map[string]PricePoint, len(existing)+len(fresh))
	order := make([]string, 0, len(existing)+len(fresh))
	add := func(p PricePoint) {
		day := p.Time.UTC().Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			order = append(order, day)
		}
		byDay[day] = p
	}
	for _, p := range existing {
		add(p)
	}
	for _, p := range fresh {
		add(p)
	}
	merged := make(PriceSeries, 0, len(order))
	for _, day := range order {
		merged = append(merged, byDay[day])
	}
	return merged.Sorted()
}
