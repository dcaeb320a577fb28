package stock

// PriceLookup resolves a ticker to its current price. The second return
// value is false when no quote is available; valuation treats that as a
// degraded field, never as an error.
type PriceLookup func(ticker string) (Money, bool)

// PositionValuation is one row of the portfolio summary. Market-dependent
// fields are nil when the ticker has no available quote, and the
// unrealized percentage is additionally nil when the cost basis is zero.
type PositionValuation struct {
	Ticker           string
	Name             string
	QuantityHeld     Quantity
	AverageCost      Money
	CostBasis        Money
	RealizedProfit   Money
	CurrentPrice     *Money
	MarketValue      *Money
	UnrealizedProfit *Money
	UnrealizedPct    *Percent
}

// PortfolioSummary is the valuation of a whole account at one price
// snapshot. TotalMarketValue and TotalUnrealizedProfit only sum the
// positions that have a quote; TotalCost and TotalRealizedProfit sum all
// of them.
type PortfolioSummary struct {
	TotalCost             Money
	TotalMarketValue      Money
	TotalRealizedProfit   Money
	TotalUnrealizedProfit Money
	TotalReturnPct        Percent
	Positions             []PositionValuation
}

// Position returns the valuation row for a ticker, if any.
func (s PortfolioSummary) Position(ticker string) (PositionValuation, bool) {
	ticker = NormalizeTicker(ticker)
	for _, p := range s.Positions {
		if p.Ticker == ticker {
			return p, true
		}
	}
	return PositionValuation{}, false
}

// ValuePortfolio values aggregated positions against a price snapshot.
// The lookup may be partial: rows without a quote keep their accounting
// fields and nil out the market-dependent ones. The function performs no
// I/O itself; fan out the actual quote fetching before calling (see
// FetchPrices).
func ValuePortfolio(positions []Position, lookup PriceLookup) PortfolioSummary {
	var summary PortfolioSummary
	priced := 0

	for _, pos := range positions {
		row := PositionValuation{
			Ticker:         pos.Ticker,
			Name:           pos.Name,
			QuantityHeld:   pos.QuantityHeld,
			AverageCost:    pos.AverageCost(),
			CostBasis:      pos.CostBasis,
			RealizedProfit: pos.RealizedProfit,
		}

		summary.TotalCost = summary.TotalCost.Add(pos.CostBasis)
		summary.TotalRealizedProfit = summary.TotalRealizedProfit.Add(pos.RealizedProfit)

		if price, ok := lookup(pos.Ticker); ok && price.IsPositive() {
			marketValue := price.Mul(pos.QuantityHeld)
			unrealized := marketValue.Sub(pos.CostBasis)
			row.CurrentPrice = &price
			row.MarketValue = &marketValue
			row.UnrealizedProfit = &unrealized
			if !pos.CostBasis.IsZero() {
				row.UnrealizedPct = Pct(Percent(unrealized.InexactFloat64() / pos.CostBasis.InexactFloat64() * 100))
			}
			summary.TotalMarketValue = summary.TotalMarketValue.Add(marketValue)
			summary.TotalUnrealizedProfit = summary.TotalUnrealizedProfit.Add(unrealized)
			priced++
		}

		summary.Positions = append(summary.Positions, row)
	}

	if summary.TotalCost.IsPositive() && priced > 0 {
		gain := summary.TotalMarketValue.Add(summary.TotalRealizedProfit).Sub(summary.TotalCost)
		summary.TotalReturnPct = Percent(gain.InexactFloat64() / summary.TotalCost.InexactFloat64() * 100)
	}
	return summary
}
