package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	days    int
	workers int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch quotes and refresh the stored price histories" }
func (*fetchCmd) Usage() string {
	return `fetch [-days <n>] [<ticker>...]

  Fetches the latest quotes and daily history for the given tickers, or
  for every ticker held in the ledger when none is given, and merges
  them into the stored price histories. A failed ticker is reported and
  skipped; the others are still refreshed.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 90, "Number of days of history to fetch")
	f.IntVar(&c.workers, "workers", 4, "Number of concurrent quote fetches")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers := f.Args()
	if len(tickers) == 0 {
		transactions, err := DecodeLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		result := stock.Aggregate(transactions, stock.AverageCost)
		for _, pos := range result.Positions {
			tickers = append(tickers, pos.Ticker)
		}
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to fetch: the ledger holds no position.")
		return subcommands.ExitSuccess
	}

	provider := stock.NewBRVM()
	status := subcommands.ExitSuccess
	for _, ticker := range tickers {
		ticker = stock.NormalizeTicker(ticker)
		fresh, err := provider.History(ticker, c.days)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no history for %s: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		existing, err := DecodePrices(ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		merged := stock.MergePriceHistory(existing, fresh)
		if err := EncodePrices(ticker, merged); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Fetched %s: %d points merged into %d\n", ticker, len(fresh), len(merged))
	}

	// Latest quotes complete the histories with today's point.
	prices, anomalies := stock.FetchPrices(tickers, provider, c.workers)
	reportAnomalies(anomalies)
	now := time.Now().UTC()
	for ticker, price := range prices {
		series, err := DecodePrices(ticker)
		if err != nil {
			continue
		}
		withToday := series.WithCurrent(now, price)
		if len(withToday) == len(series) {
			continue
		}
		if err := EncodePrices(ticker, withToday); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
		}
	}
	return status
}
