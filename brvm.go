package stock

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// sikaBase is the JSON quote API serving BRVM listings.
const sikaBase = "https://www.sikafinance.com/api/marche"

// BRVM is a QuoteProvider backed by the sikafinance JSON endpoints.
// Responses are cached on disk with a daily expiry: the exchange
// publishes a single close per trading day.
type BRVM struct {
	client *http.Client
	base   string
}

// NewBRVM returns the default BRVM quote provider.
func NewBRVM() *BRVM {
	return &BRVM{client: dailyClient(), base: sikaBase}
}

/*
	{
	    "symbol": "SNTS",
	    "name": "Sonatel Senegal",
	    "last": 20100,
	    "var": -0.74,
	    "volume": 12440,
	    "history": [["2026-08-27", 20250], ["2026-08-28", 20100]]
	}
*/
func (b *BRVM) Latest(ticker string) (Quote, error) {
	ticker = NormalizeTicker(ticker)
	var jobj any
	addr := fmt.Sprintf("%s/cotation/%s", b.base, ticker)
	if err := jwget(b.client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error in wget %q: %w", ticker, err)
	}

	last, err := jfloat(jobj, "$.last")
	if err != nil {
		return Quote{}, fmt.Errorf("error parsing quote for %q: %w", ticker, err)
	}

	quote := Quote{
		Ticker:    ticker,
		Price:     M(last, DefaultCurrency),
		Source:    "sikafinance",
		FetchedAt: time.Now().UTC(),
	}
	// Best effort on the decorative fields.
	if name, err := jstring(jobj, "$.name"); err == nil {
		quote.Name = name
	}
	if change, err := jfloat(jobj, "$.var"); err == nil {
		quote.ChangePct = Pct(Percent(change))
	}
	if volume, err := jfloat(jobj, "$.volume"); err == nil {
		quote.Volume = int64(volume)
	}
	return quote, nil
}

func (b *BRVM) History(ticker string, days int) (PriceSeries, error) {
	ticker = NormalizeTicker(ticker)
	var jobj any
	addr := fmt.Sprintf("%s/historique/%s?jours=%d", b.base, ticker, days)
	if err := jwget(b.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", ticker, err)
	}

	jval, err := jsonpath.Get("$.history[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing history for %q: %w", ticker, err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing history for %q: not a list, got %T", ticker, jval)
	}

	var series PriceSeries
	for _, jrow := range jrows {
		row, ok := jrow.([]any)
		if !ok || len(row) < 2 {
			continue
		}
		day, ok := row[0].(string)
		if !ok {
			continue
		}
		at, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		close, ok := row[1].(float64)
		if !ok || close <= 0 {
			continue
		}
		series = append(series, PricePoint{Time: at.UTC(), Price: M(close, DefaultCurrency)})
	}
	return series.Sorted(), nil
}

// jfloat picks a single float64 from a decoded JSON document.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("%q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of
	// one answer or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%q: not a float, got %v", path, jval)
	}
	return val, nil
}

// jstring picks a single string from a decoded JSON document.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q: not a string, got %v", path, jval)
	}
	return val, nil
}
