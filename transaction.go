package stock

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single immutable buy or sell record of the append-only
// ledger. The engine only ever reads transactions; it never mutates or
// deletes them.
type Transaction struct {
	Account    string    // Account identifies the owning account, optional for single-account ledgers.
	Ticker     string    // Ticker is the normalized uppercase BRVM symbol.
	Name       string    // Name is an optional display name for the security.
	Side       Side      // Side is BUY or SELL.
	Quantity   Quantity  // Quantity is the number of shares, always positive.
	UnitPrice  Money     // UnitPrice is the price paid or received per share.
	Fees       Money     // Fees is the non-negative broker fee for the whole order.
	OccurredAt time.Time // OccurredAt is when the order was executed.
	Memo       string    // Memo is an optional note.
}

// NewBuy creates a buy transaction.
func NewBuy(at time.Time, ticker string, quantity Quantity, unitPrice, fees Money) Transaction {
	return Transaction{Ticker: NormalizeTicker(ticker), Side: Buy, Quantity: quantity, UnitPrice: unitPrice, Fees: fees, OccurredAt: at}
}

// NewSell creates a sell transaction.
func NewSell(at time.Time, ticker string, quantity Quantity, unitPrice, fees Money) Transaction {
	return Transaction{Ticker: NormalizeTicker(ticker), Side: Sell, Quantity: quantity, UnitPrice: unitPrice, Fees: fees, OccurredAt: at}
}

// NormalizeTicker maps a user-provided symbol to its canonical uppercase form.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Currency returns the transaction currency, defaulting to XOF.
func (t Transaction) Currency() string {
	if c := t.UnitPrice.Currency(); c != "" {
		return c
	}
	return DefaultCurrency
}

// Cost returns the full cash cost of the order: quantity*price + fees.
func (t Transaction) Cost() Money {
	return t.UnitPrice.Mul(t.Quantity).Add(t.Fees)
}

// Validate checks the record invariants and applies quick fixes (ticker
// normalization, default currency). It returns the fixed transaction or an
// error describing the violated invariant.
func (t Transaction) Validate() (Transaction, error) {
	t.Ticker = NormalizeTicker(t.Ticker)
	if t.Ticker == "" {
		return t, errors.New("transaction ticker is missing")
	}
	if t.Side != Buy && t.Side != Sell {
		return t, fmt.Errorf("unknown transaction side: %q", t.Side)
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.UnitPrice.IsPositive() {
		return t, fmt.Errorf("transaction unit price must be positive, got %s", t.UnitPrice.Decimal())
	}
	if t.Fees.IsNegative() {
		return t, fmt.Errorf("transaction fees must not be negative, got %s", t.Fees.Decimal())
	}
	if t.UnitPrice.Currency() == "" {
		t.UnitPrice = M(t.UnitPrice.Decimal(), DefaultCurrency)
	}
	if t.Fees.Currency() == "" {
		t.Fees = M(t.Fees.Decimal(), t.UnitPrice.Currency())
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now().UTC()
	}
	return t, nil
}

// Equal reports whether two transactions describe the same fact.
func (t Transaction) Equal(o Transaction) bool {
	return t.Account == o.Account &&
		t.Ticker == o.Ticker &&
		t.Side == o.Side &&
		t.Quantity.Equal(o.Quantity) &&
		t.UnitPrice.Equal(o.UnitPrice) &&
		t.Fees.Equal(o.Fees) &&
		t.OccurredAt.Equal(o.OccurredAt) &&
		t.Memo == o.Memo
}

// MarshalJSON implements the json.Marshaler interface with a canonical
// field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("account", t.Account)
	w.Append("ticker", t.Ticker)
	w.Optional("name", t.Name)
	w.Append("side", t.Side)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.UnitPrice.Decimal())
	w.Append("currency", t.Currency())
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees.Decimal())
	}
	w.Append("date", t.OccurredAt.UTC().Format(time.RFC3339))
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// txRecord is a specialized struct for decoding the ledger line format.
type txRecord struct {
	Account  string          `json:"account"`
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Side     string          `json:"side"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Fees     decimal.Decimal `json:"fees"`
	Date     time.Time       `json:"date"`
	Memo     string          `json:"memo"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var rec txRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	side, err := ParseSide(rec.Side)
	if err != nil {
		return err
	}
	if rec.Currency == "" {
		rec.Currency = DefaultCurrency
	}
	*t = Transaction{
		Account:    rec.Account,
		Ticker:     NormalizeTicker(rec.Ticker),
		Name:       rec.Name,
		Side:       side,
		Quantity:   rec.Quantity,
		UnitPrice:  M(rec.Price, rec.Currency),
		Fees:       M(rec.Fees, rec.Currency),
		OccurredAt: rec.Date,
		Memo:       rec.Memo,
	}
	return nil
}

// byDate stable-sorts transactions ascending by OccurredAt. Records sharing
// a timestamp keep their relative ledger order, so folding is deterministic
// for any input permutation that preserves chronological order.
func byDate(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return a.OccurredAt.Compare(b.OccurredAt)
	})
	return sorted
}

// txTextRe matches one-line orders like "BUY SNTS 100 @ 5000" or
// "SELL ETIT 50 12000 XOF".
var txTextRe = regexp.MustCompile(`^(BUY|SELL)\s+(\w+)\s+([\d.]+)\s+(?:@\s*)?([\d.]+)(?:\s+([A-Za-z]{3}))?$`)

// ParseTransactionText parses a one-line order in the chat format
// "BUY|SELL TICKER QTY [@] PRICE [CUR]". The transaction is stamped with
// the current time; callers may override OccurredAt before appending.
func ParseTransactionText(text string) (Transaction, error) {
	m := txTextRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(text)))
	if m == nil {
		return Transaction{}, fmt.Errorf("cannot parse order %q, expected \"BUY|SELL TICKER QTY [@] PRICE [CUR]\"", text)
	}
	qty, err := decimal.NewFromString(m[3])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity %q: %w", m[3], err)
	}
	price, err := decimal.NewFromString(m[4])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid price %q: %w", m[4], err)
	}
	currency := m[5]
	if currency == "" {
		currency = DefaultCurrency
	}
	tx := Transaction{
		Ticker:     NormalizeTicker(m[2]),
		Side:       Side(m[1]),
		Quantity:   Q(qty),
		UnitPrice:  M(price, currency),
		Fees:       M(0, currency),
		OccurredAt: time.Now().UTC(),
	}
	return tx.Validate()
}
