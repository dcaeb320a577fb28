package stock

import (
	"bytes"
	"strings"
	"testing"
)

func TestPriceHistoryRoundTrip(t *testing.T) {
	series := xofPrices(day(1), 5000, 5100, 5050)

	var buf bytes.Buffer
	if err := EncodePriceHistory(&buf, series); err != nil {
		t.Fatalf("EncodePriceHistory() failed: %v", err)
	}
	// XOF is the default: the persisted form omits it.
	if strings.Contains(buf.String(), "currency") {
		t.Errorf("XOF points should omit the currency: %s", buf.String())
	}

	decoded, err := DecodePriceHistory(&buf)
	if err != nil {
		t.Fatalf("DecodePriceHistory() failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("decoded %d points, want 3", len(decoded))
	}
	for i := range series {
		if !decoded[i].Time.Equal(series[i].Time) || !decoded[i].Price.Equal(series[i].Price) {
			t.Errorf("point %d = %+v, want %+v", i, decoded[i], series[i])
		}
	}
}

func TestDecodePriceHistory_SortsAndDefaults(t *testing.T) {
	history := `{"date":"2026-08-03","price":5050}
{"date":"2026-08-01","price":5000}`

	decoded, err := DecodePriceHistory(strings.NewReader(history))
	if err != nil {
		t.Fatalf("DecodePriceHistory() failed: %v", err)
	}
	if !decoded[0].Time.Equal(day(1)) {
		t.Errorf("first point = %v, want the oldest", decoded[0].Time)
	}
	if decoded[0].Price.Currency() != "XOF" {
		t.Errorf("currency = %q, want XOF default", decoded[0].Price.Currency())
	}
}

func TestDecodePriceHistory_BadLineIsFatal(t *testing.T) {
	if _, err := DecodePriceHistory(strings.NewReader(`{"date":"yesterday","price":5000}`)); err == nil {
		t.Fatal("a broken history line should fail the whole decode")
	}
}

func TestMergePriceHistory(t *testing.T) {
	existing := xofPrices(day(1), 5000, 5100)
	fresh := PriceSeries{
		{Time: day(2), Price: XOF(5150)}, // corrects day 2
		{Time: day(3), Price: XOF(5200)}, // new day
	}

	merged := MergePriceHistory(existing, fresh)
	if len(merged) != 3 {
		t.Fatalf("merged %d points, want 3", len(merged))
	}
	assertMoney(t, "day 1", merged[0].Price, 5000)
	assertMoney(t, "day 2 (fresh wins)", merged[1].Price, 5150)
	assertMoney(t, "day 3", merged[2].Price, 5200)
}
