package stock

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// fakeProvider serves quotes from a fixed table and counts in-flight
// lookups to observe the worker pool bound.
type fakeProvider struct {
	prices     map[string]float64
	delay      time.Duration
	inFlight   atomic.Int32
	maxSeen    atomic.Int32
	historyFor map[string]PriceSeries
}

func (p *fakeProvider) Latest(ticker string) (Quote, error) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		seen := p.maxSeen.Load()
		if n <= seen || p.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	price, ok := p.prices[NormalizeTicker(ticker)]
	if !ok {
		return Quote{}, fmt.Errorf("no quote for %q", ticker)
	}
	return Quote{Ticker: NormalizeTicker(ticker), Price: XOF(price), Source: "fake"}, nil
}

func (p *fakeProvider) History(ticker string, days int) (PriceSeries, error) {
	series, ok := p.historyFor[NormalizeTicker(ticker)]
	if !ok {
		return nil, fmt.Errorf("no history for %q", ticker)
	}
	return series, nil
}

func TestFetchPrices_PartialResults(t *testing.T) {
	provider := &fakeProvider{prices: map[string]float64{
		"SNTS": 5500,
		"BOAB": 3500,
		"ZERO": 0,
	}}

	prices, anomalies := FetchPrices([]string{"snts", "BOAB", "ETIT", "ZERO"}, provider, 2)

	if len(prices) != 2 {
		t.Fatalf("fetched %d prices, want 2: %v", len(prices), prices)
	}
	assertMoney(t, "SNTS", prices["SNTS"], 5500)
	assertMoney(t, "BOAB", prices["BOAB"], 3500)
	// The failed ticker and the zero quote both degrade to anomalies.
	if len(anomalies) != 2 {
		t.Fatalf("reported %d anomalies, want 2: %v", len(anomalies), anomalies)
	}
	for _, a := range anomalies {
		if a.Kind != DataQuality {
			t.Errorf("anomaly kind = %s, want data-quality", a.Kind)
		}
	}
}

func TestFetchPrices_BoundsConcurrency(t *testing.T) {
	provider := &fakeProvider{
		prices: map[string]float64{},
		delay:  5 * time.Millisecond,
	}
	tickers := make([]string, 20)
	for i := range tickers {
		ticker := fmt.Sprintf("T%02d", i)
		tickers[i] = ticker
		provider.prices[ticker] = 100
	}

	prices, _ := FetchPrices(tickers, provider, 3)
	if len(prices) != 20 {
		t.Fatalf("fetched %d prices, want 20", len(prices))
	}
	if seen := provider.maxSeen.Load(); seen > 3 {
		t.Errorf("observed %d concurrent lookups, want at most 3", seen)
	}
}

func TestFetchPrices_MinimumOneWorker(t *testing.T) {
	provider := &fakeProvider{prices: map[string]float64{"SNTS": 5500}}
	prices, _ := FetchPrices([]string{"SNTS"}, provider, 0)
	if len(prices) != 1 {
		t.Fatalf("fetched %d prices, want 1", len(prices))
	}
}

func TestSnapshotLookup_NormalizesTicker(t *testing.T) {
	lookup := SnapshotLookup(map[string]Money{"SNTS": XOF(5500)})
	if _, ok := lookup(" snts "); !ok {
		t.Error("lookup should normalize the ticker")
	}
	if _, ok := lookup("ETIT"); ok {
		t.Error("lookup should miss unknown tickers")
	}
}
