package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt

  Validates and formats the ledger file. This command reads all
  transactions, validates them, applies available quick-fixes (ticker
  normalization, default currency), sorts them by date, and writes them
  back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	transactions, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted := make([]stock.Transaction, 0, len(transactions))
	for i, tx := range transactions {
		fixed, err := tx.Validate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid transaction #%d: %v\n", i+1, err)
			return subcommands.ExitFailure
		}
		formatted = append(formatted, fixed)
	}

	var buf bytes.Buffer
	if err := stock.EncodeTransactions(&buf, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(*ledgerFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Formatted %d transactions in %s\n", len(formatted), *ledgerFile)
	return subcommands.ExitSuccess
}
