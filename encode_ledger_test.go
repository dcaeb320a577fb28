package stock

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTransactions(t *testing.T) {
	ledger := strings.Join([]string{
		`{"ticker":"SNTS","side":"SELL","quantity":100,"price":5500,"currency":"XOF","date":"2026-08-03T00:00:00Z"}`,
		``,
		`{"ticker":"snts","side":"buy","quantity":100,"price":5000,"date":"2026-08-01T00:00:00Z"}`,
	}, "\n")

	transactions, err := DecodeTransactions(strings.NewReader(ledger))
	if err != nil {
		t.Fatalf("DecodeTransactions() failed: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(transactions))
	}
	// Sorted chronologically, ticker and side normalized, currency defaulted.
	if transactions[0].Side != Buy || transactions[0].Ticker != "SNTS" {
		t.Errorf("first transaction = %+v, want the normalized buy", transactions[0])
	}
	if transactions[0].UnitPrice.Currency() != "XOF" {
		t.Errorf("currency = %q, want XOF default", transactions[0].UnitPrice.Currency())
	}
	if transactions[1].Side != Sell {
		t.Errorf("second transaction = %+v, want the sell", transactions[1])
	}
}

func TestDecodeTransactions_BadLineIsFatal(t *testing.T) {
	ledger := `{"ticker":"SNTS","side":"BUY","quantity":100,"price":5000,"date":"2026-08-01T00:00:00Z"}
not json at all`

	_, err := DecodeTransactions(strings.NewReader(ledger))
	if err == nil {
		t.Fatal("a broken ledger line should fail the whole decode")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the broken line: %v", err)
	}
}

func TestEncodeTransactions_Canonical(t *testing.T) {
	// Encoded out of order, decoded back sorted.
	var buf bytes.Buffer
	err := EncodeTransactions(&buf, []Transaction{
		NewSell(day(3), "SNTS", Q(100), XOF(5500), XOF(0)),
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0)),
	})
	if err != nil {
		t.Fatalf("EncodeTransactions() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("encoded %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"side":"BUY"`) {
		t.Errorf("first line should be the earliest transaction: %s", lines[0])
	}

	decoded, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions() failed: %v", err)
	}
	if len(decoded) != 2 || !decoded[0].Equal(NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0))) {
		t.Errorf("round trip altered the ledger: %+v", decoded)
	}
}
