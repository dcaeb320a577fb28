package stock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testBRVM serves canned sikafinance-shaped JSON from a local server.
func testBRVM(t *testing.T) *BRVM {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cotation/SNTS", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"SNTS","name":"Sonatel Senegal","last":20100,"var":-0.74,"volume":12440}`)
	})
	mux.HandleFunc("/cotation/BARE", func(w http.ResponseWriter, r *http.Request) {
		// Only the price, none of the decorative fields.
		fmt.Fprint(w, `{"last":5000}`)
	})
	mux.HandleFunc("/historique/SNTS", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"SNTS","history":[
			["2026-08-28",20100],
			["2026-08-27",20250],
			["not a date",1],
			["2026-08-26",0]
		]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &BRVM{client: srv.Client(), base: srv.URL}
}

func TestBRVM_Latest(t *testing.T) {
	quote, err := testBRVM(t).Latest("snts")
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	if quote.Ticker != "SNTS" || quote.Name != "Sonatel Senegal" {
		t.Errorf("quote = %+v", quote)
	}
	assertMoney(t, "Price", quote.Price, 20100)
	assertPct(t, "ChangePct", quote.ChangePct, -0.74)
	if quote.Volume != 12440 {
		t.Errorf("Volume = %d, want 12440", quote.Volume)
	}
}

func TestBRVM_LatestBestEffortFields(t *testing.T) {
	quote, err := testBRVM(t).Latest("BARE")
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	assertMoney(t, "Price", quote.Price, 5000)
	if quote.Name != "" || quote.ChangePct != nil || quote.Volume != 0 {
		t.Errorf("decorative fields should stay empty: %+v", quote)
	}
}

func TestBRVM_LatestUnknownTicker(t *testing.T) {
	if _, err := testBRVM(t).Latest("ETIT"); err == nil {
		t.Fatal("an unknown ticker should fail, not return a zero quote")
	}
}

func TestBRVM_History(t *testing.T) {
	series, err := testBRVM(t).History("SNTS", 90)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	// The bad date and the zero close are dropped; the rest is sorted.
	if len(series) != 2 {
		t.Fatalf("history has %d points, want 2: %+v", len(series), series)
	}
	assertMoney(t, "oldest", series[0].Price, 20250)
	assertMoney(t, "newest", series[1].Price, 20100)
	if !series[0].Time.Before(series[1].Time) {
		t.Error("history should be sorted ascending")
	}
}
