package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/google/subcommands"
)

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a broker CSV export" }
func (*importCmd) Usage() string {
	return `import -f <file.csv>

  Imports transactions from a CSV export. Rows that cannot be parsed are
  skipped and reported; the valid ones are appended to the ledger.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	transactions, anomalies, err := stock.ImportCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	reportAnomalies(anomalies)

	out, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	for _, tx := range transactions {
		if err := stock.EncodeTransaction(out, tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Imported %d transactions from %s (%d rows skipped)\n", len(transactions), c.file, len(anomalies))
	return subcommands.ExitSuccess
}
