package stock

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeTransactions reads a JSONL transaction log and returns the
// records sorted chronologically. A line that cannot be decoded fails the
// whole decode: a broken ledger file is a caller problem, unlike a
// well-formed record with bad values, which Aggregate rejects
// individually.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction on line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}

	return byDate(transactions), nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it
// to the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions persists transactions to an io.Writer in canonical
// JSONL form: stable-sorted by date, with ordered keys within each line.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range byDate(transactions) {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
