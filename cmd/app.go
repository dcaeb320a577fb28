// Package cmd implements the CLI application to track a BRVM stock
// portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&recordCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&analyzeCmd{}, "reports")
	c.Register(&alertsCmd{}, "reports")

	c.Register(&fetchCmd{}, "market data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var pricesDir = flag.String("prices-dir", ".prices", "Path to the folder of per-ticker price history files")
var alertsFile = flag.String("alerts-file", "alerts.jsonl", "Path to the alert rules file (JSONL format)")

// DecodeLedger reads all transactions from the app ledger file.
// A missing file is an empty ledger, not an error.
func DecodeLedger() ([]stock.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger %q does not exist, starting from an empty ledger", *ledgerFile)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return stock.DecodeTransactions(f)
}

// appendTransaction validates a single transaction and appends it to the
// app ledger file.
func appendTransaction(tx stock.Transaction) subcommands.ExitStatus {
	tx, err := tx.Validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := stock.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s %s to %s\n", tx.Side, tx.Ticker, *ledgerFile)
	return subcommands.ExitSuccess
}

// priceFile returns the price history file of one ticker.
func priceFile(ticker string) string {
	return filepath.Join(*pricesDir, stock.NormalizeTicker(ticker)+".jsonl")
}

// DecodePrices reads one ticker's price history from the app prices
// folder. A missing file is an empty history, not an error.
func DecodePrices(ticker string) (stock.PriceSeries, error) {
	f, err := os.Open(priceFile(ticker))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open price history for %q: %w", ticker, err)
	}
	defer f.Close()
	return stock.DecodePriceHistory(f)
}

// EncodePrices writes one ticker's price history to the app prices folder.
func EncodePrices(ticker string, series stock.PriceSeries) error {
	if err := os.MkdirAll(*pricesDir, 0755); err != nil {
		return fmt.Errorf("could not create prices folder %q: %w", *pricesDir, err)
	}
	f, err := os.Create(priceFile(ticker))
	if err != nil {
		return fmt.Errorf("could not create price history for %q: %w", ticker, err)
	}
	defer f.Close()
	return stock.EncodePriceHistory(f, series)
}

// DecodeAlertRules reads the alert rules from the app alerts file.
// A missing file means no rules.
func DecodeAlertRules() ([]stock.AlertRule, []stock.Anomaly, error) {
	f, err := os.Open(*alertsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not open alerts file %q: %w", *alertsFile, err)
	}
	defer f.Close()
	return stock.DecodeAlertRules(f)
}

// reportAnomalies prints anomalies to stderr, keeping stdout for the report.
func reportAnomalies(anomalies []stock.Anomaly) {
	for _, a := range anomalies {
		fmt.Fprintf(os.Stderr, "warning: %s\n", a)
	}
}
