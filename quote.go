package stock

import (
	"log"
	"sync"
	"time"
)

// Quote is a normalized point-in-time snapshot from a quote source.
type Quote struct {
	Ticker    string
	Name      string
	Price     Money
	ChangePct *Percent // Day change, when the source publishes it.
	Volume    int64
	Source    string
	FetchedAt time.Time
}

// QuoteProvider supplies market data for one ticker on demand. Providers
// may fail or return stale data; callers degrade to partial results
// rather than failing.
type QuoteProvider interface {
	// Latest returns the most recent quote for the ticker.
	Latest(ticker string) (Quote, error)
	// History returns up to the last days daily closes, ascending.
	History(ticker string, days int) (PriceSeries, error)
}

// FetchPrices resolves current prices for many tickers concurrently over
// a bounded worker pool and returns the partial snapshot: tickers whose
// lookup failed are absent from the map and reported as anomalies.
// The result is directly usable as a PriceLookup for ValuePortfolio.
func FetchPrices(tickers []string, provider QuoteProvider, workers int) (map[string]Money, []Anomaly) {
	if workers < 1 {
		workers = 1
	}

	type answer struct {
		ticker string
		price  Money
		err    error
	}

	sem := make(chan struct{}, workers)
	answers := make(chan answer, len(tickers))
	var wg sync.WaitGroup
	for _, ticker := range tickers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			quote, err := provider.Latest(ticker)
			answers <- answer{ticker: NormalizeTicker(ticker), price: quote.Price, err: err}
		}()
	}
	wg.Wait()
	close(answers)

	prices := make(map[string]Money, len(tickers))
	var anomalies []Anomaly
	for a := range answers {
		if a.err != nil {
			log.Printf("quote-miss ticker=%q err=%v", a.ticker, a.err)
			anomalies = append(anomalies, anomalyf(DataQuality, a.ticker, "no quote available: %v", a.err))
			continue
		}
		if !a.price.IsPositive() {
			anomalies = append(anomalies, anomalyf(DataQuality, a.ticker, "quote source returned a non-positive price"))
			continue
		}
		prices[a.ticker] = a.price
	}
	return prices, anomalies
}

// SnapshotLookup adapts a fetched price map into a PriceLookup.
func SnapshotLookup(prices map[string]Money) PriceLookup {
	return func(ticker string) (Money, bool) {
		price, ok := prices[NormalizeTicker(ticker)]
		return price, ok
	}
}
