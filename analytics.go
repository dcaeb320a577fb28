package stock

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Moving average windows, in trading days.
const (
	ShortWindow = 20
	LongWindow  = 50
)

// tradingDaysPerYear annualizes daily volatility.
const tradingDaysPerYear = 252

// Trend classifies the price against its moving averages.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
	TrendUnknown Trend = "unknown"
)

// AnalyticsReport is the derived, ephemeral analysis of one ticker.
// Optional fields are nil when the series carries too little history to
// compute them; consumers must branch on nil rather than assume defaults.
type AnalyticsReport struct {
	Ticker          string
	CurrentPrice    Money
	Currency        string
	DailyReturnPct  *Percent // Percent change of the last two points.
	PeriodReturnPct *Percent // Mean of the recent half vs mean of the older half.
	VolatilityPct   *Percent // Annualized sample volatility of daily returns.
	MAShort         *Money   // Simple moving average over ShortWindow points.
	MALong          *Money   // Simple moving average over LongWindow points.
	PERatio         *float64 // Supplied externally, passed through to the summary.
	Trend           Trend
	Signal          *Side
	Summary         string
	ComputedAt      time.Time
}

// Analyze builds the full analytics report for a ticker from its
// historical series and a freshly observed price. The current price is
// appended as the most recent point when positive and not already the
// last point of the series. Missing history degrades fields to nil; the
// function never fails.
func Analyze(ticker string, currentPrice Money, series PriceSeries, peRatio *float64) AnalyticsReport {
	prices := series.Sorted().Prices()
	if currentPrice.IsPositive() {
		if n := len(prices); n == 0 || !prices[n-1].Equal(currentPrice) {
			prices = append(prices, currentPrice)
		}
	}

	report := AnalyticsReport{
		Ticker:       NormalizeTicker(ticker),
		CurrentPrice: currentPrice,
		Currency:     currentPrice.Currency(),
		PERatio:      peRatio,
		Trend:        TrendUnknown,
		ComputedAt:   time.Now().UTC(),
	}
	if report.Currency == "" {
		report.Currency = DefaultCurrency
	}

	report.DailyReturnPct = DailyReturn(prices)
	report.PeriodReturnPct = PeriodReturn(prices)
	report.VolatilityPct = Volatility(Returns(prices))
	report.MAShort = MovingAverage(prices, ShortWindow)
	report.MALong = MovingAverage(prices, LongWindow)
	report.Trend = TrendOf(currentPrice, report.MAShort, report.MALong)
	report.Signal = Signal(currentPrice, report.MAShort, report.MALong)
	report.Summary = buildSummary(report)
	return report
}

// DailyReturn computes the percent change of the last two points, or nil
// with fewer than two points or a zero previous price.
func DailyReturn(prices []Money) *Percent {
	n := len(prices)
	if n < 2 {
		return nil
	}
	prev, curr := prices[n-2].InexactFloat64(), prices[n-1].InexactFloat64()
	if prev == 0 {
		return nil
	}
	return Pct(Percent((curr - prev) / prev * 100))
}

// PeriodReturn approximates a one-month return by splitting the series at
// its midpoint and comparing the mean of the recent half against the mean
// of the older half. This is a deliberate low-fidelity proxy, not a
// calendar-aligned computation: BRVM history is too sparse and irregular
// for a reliable 30-day lookup. Returns nil with fewer than two points or
// a zero older-half mean.
func PeriodReturn(prices []Money) *Percent {
	n := len(prices)
	if n < 2 {
		return nil
	}
	mid := max(1, n/2)
	older := make([]float64, 0, mid)
	recent := make([]float64, 0, n-mid)
	for i, p := range prices {
		if i < mid {
			older = append(older, p.InexactFloat64())
		} else {
			recent = append(recent, p.InexactFloat64())
		}
	}
	oldMean := stat.Mean(older, nil)
	if oldMean == 0 {
		return nil
	}
	newMean := stat.Mean(recent, nil)
	return Pct(Percent((newMean - oldMean) / oldMean * 100))
}

// Returns converts a price sequence into pairwise daily percent returns,
// skipping pairs whose previous price is zero.
func Returns(prices []Money) []float64 {
	var returns []float64
	for i := 1; i < len(prices); i++ {
		prev, curr := prices[i-1].InexactFloat64(), prices[i].InexactFloat64()
		if prev != 0 {
			returns = append(returns, (curr-prev)/prev*100)
		}
	}
	return returns
}

// Volatility annualizes the sample standard deviation of daily percent
// returns (n-1 divisor) over 252 trading days. Returns nil on an empty
// return list; a single return yields zero volatility rather than a
// division by zero.
func Volatility(returns []float64) *Percent {
	n := len(returns)
	if n == 0 {
		return nil
	}
	var sd float64
	if n > 1 {
		sd = stat.StdDev(returns, nil)
	}
	return Pct(Percent(sd * math.Sqrt(tradingDaysPerYear)))
}

// MovingAverage computes the simple arithmetic mean of the trailing
// window, exactly, in the prices' currency. Returns nil when the series
// has fewer points than the window.
func MovingAverage(prices []Money, window int) *Money {
	if window <= 0 || len(prices) < window {
		return nil
	}
	var sum Money
	for _, p := range prices[len(prices)-window:] {
		sum = sum.Add(p)
	}
	ma := sum.Div(Q(window))
	return &ma
}

// TrendOf classifies the price against its short and long moving
// averages: bullish above both in strict order, bearish below both in
// strict order, neutral when both exist but neither ordering holds, and
// unknown when either average is missing.
func TrendOf(currentPrice Money, maShort, maLong *Money) Trend {
	if maShort == nil || maLong == nil || !currentPrice.IsPositive() {
		return TrendUnknown
	}
	switch {
	case currentPrice.GreaterThan(*maShort) && maShort.GreaterThan(*maLong):
		return TrendBullish
	case currentPrice.LessThan(*maShort) && maShort.LessThan(*maLong):
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// Signal derives a BUY/SELL heuristic from the moving average crossover:
// BUY when the short average is above the long one and the price above
// the short average, SELL in the mirrored case, nil otherwise. It needs
// both averages and a positive price. A signal is a heuristic, not a
// recommendation guarantee.
func Signal(currentPrice Money, maShort, maLong *Money) *Side {
	if maShort == nil || maLong == nil || !currentPrice.IsPositive() {
		return nil
	}
	switch {
	case maShort.GreaterThan(*maLong) && currentPrice.GreaterThan(*maShort):
		s := Buy
		return &s
	case maShort.LessThan(*maLong) && currentPrice.LessThan(*maShort):
		s := Sell
		return &s
	default:
		return nil
	}
}

// buildSummary renders the non-nil fields in a fixed order. This is the
// deterministic fallback shown when no narrative generator is configured.
func buildSummary(r AnalyticsReport) string {
	parts := []string{fmt.Sprintf("%s: %s %s", r.Ticker, r.CurrentPrice.Decimal(), r.Currency)}
	if r.DailyReturnPct != nil {
		parts = append(parts, fmt.Sprintf("1d: %+.2f%%", float64(*r.DailyReturnPct)))
	}
	if r.PeriodReturnPct != nil {
		parts = append(parts, fmt.Sprintf("1m: %+.2f%%", float64(*r.PeriodReturnPct)))
	}
	if r.VolatilityPct != nil {
		parts = append(parts, fmt.Sprintf("Vol: %.1f%%", float64(*r.VolatilityPct)))
	}
	if r.MAShort != nil {
		parts = append(parts, fmt.Sprintf("MA20: %.0f", r.MAShort.InexactFloat64()))
	}
	if r.MALong != nil {
		parts = append(parts, fmt.Sprintf("MA50: %.0f", r.MALong.InexactFloat64()))
	}
	if r.PERatio != nil {
		parts = append(parts, fmt.Sprintf("P/E: %.1f", *r.PERatio))
	}
	if r.Trend != TrendUnknown {
		parts = append(parts, fmt.Sprintf("Trend: %s", r.Trend))
	}
	return strings.Join(parts, " | ")
}
