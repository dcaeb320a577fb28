package stock

import (
	"slices"
	"time"
)

// PricePoint is one observed price for a ticker at a point in time.
type PricePoint struct {
	Time  time.Time
	Price Money
}

// PriceSeries is a time-ascending sequence of observed prices for one
// ticker. The series may be sparse or irregular; analytics only rely on
// the ordering, not on calendar alignment.
type PriceSeries []PricePoint

// Sorted returns a copy of the series stable-sorted ascending by time.
func (s PriceSeries) Sorted() PriceSeries {
	sorted := slices.Clone(s)
	slices.SortStableFunc(sorted, func(a, b PricePoint) int {
		return a.Time.Compare(b.Time)
	})
	return sorted
}

// WithCurrent appends a freshly observed price as the most recent point,
// when it is positive and newer than the last point of the series.
func (s PriceSeries) WithCurrent(at time.Time, price Money) PriceSeries {
	if !price.IsPositive() {
		return s
	}
	if n := len(s); n > 0 && !at.After(s[n-1].Time) {
		return s
	}
	return append(slices.Clone(s), PricePoint{Time: at, Price: price})
}

// Prices returns the price column of the series.
func (s PriceSeries) Prices() []Money {
	prices := make([]Money, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent point of the series, if any.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}
