package stock

import (
	"math"
	"testing"
	"time"
)

// day is a helper for tests to build ledger dates in August 2026.
func day(d int) time.Time { return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC) }

// NO is a helper for tests to create money with no currency set.
func NO(v float64) Money { return M(v, "") }

// assertMoney fails when the amount differs from want by more than a cent.
func assertMoney(t *testing.T, label string, got Money, want float64) {
	t.Helper()
	if math.Abs(got.InexactFloat64()-want) > 0.01 {
		t.Errorf("%s = %s, want %.2f", label, got.Decimal(), want)
	}
}

// assertPct fails when the percentage is nil or differs from want.
func assertPct(t *testing.T, label string, got *Percent, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %.2f%%", label, want)
	}
	if !got.Equal(Percent(want)) {
		t.Errorf("%s = %s, want %.2f%%", label, got, want)
	}
}

// xofPrices builds a daily series from floats, one point per day.
func xofPrices(start time.Time, values ...float64) PriceSeries {
	series := make(PriceSeries, 0, len(values))
	for i, v := range values {
		series = append(series, PricePoint{Time: start.AddDate(0, 0, i), Price: XOF(v)})
	}
	return series
}
