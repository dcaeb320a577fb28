package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/NeoByte-Technology/RealTimeStock/agent"
	"github.com/NeoByte-Technology/RealTimeStock/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type summaryCmd struct {
	method  string
	offline bool
	workers int
	narrate bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "aggregate the ledger and value the portfolio" }
func (*summaryCmd) Usage() string {
	return `summary [-method <average|fifo|lifo>] [-offline] [-narrate]

  Aggregates the ledger into positions and values them against current
  quotes. Positions without a quote keep their accounting fields and
  show n/a market fields.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "average", "Cost basis method (average, fifo, lifo)")
	f.BoolVar(&c.offline, "offline", false, "Value against the stored price histories instead of fetching quotes")
	f.IntVar(&c.workers, "workers", 4, "Number of concurrent quote fetches")
	f.BoolVar(&c.narrate, "narrate", false, "Append a model-written narrative of the portfolio")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := stock.ParseCostBasisMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	transactions, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result := stock.Aggregate(transactions, method)
	reportAnomalies(result.Anomalies)

	lookup, anomalies := c.lookup(result)
	reportAnomalies(anomalies)

	summary := stock.ValuePortfolio(result.Positions, lookup)
	printMarkdown(renderer.RenderSummary(&summary))

	if c.narrate {
		narratePortfolio(ctx, &summary)
	}
	return subcommands.ExitSuccess
}

// lookup builds the price lookup for the aggregated positions, online or
// from the stored histories.
func (c *summaryCmd) lookup(result stock.AggregateResult) (stock.PriceLookup, []stock.Anomaly) {
	tickers := make([]string, 0, len(result.Positions))
	for _, pos := range result.Positions {
		tickers = append(tickers, pos.Ticker)
	}

	if !c.offline {
		prices, anomalies := stock.FetchPrices(tickers, stock.NewBRVM(), c.workers)
		return stock.SnapshotLookup(prices), anomalies
	}

	prices := make(map[string]stock.Money, len(tickers))
	var anomalies []stock.Anomaly
	for _, ticker := range tickers {
		series, err := DecodePrices(ticker)
		if err != nil {
			anomalies = append(anomalies, stock.Anomaly{Kind: stock.DataQuality, Ticker: ticker, Message: err.Error()})
			continue
		}
		if last, ok := series.Last(); ok {
			prices[ticker] = last.Price
		}
	}
	return stock.SnapshotLookup(prices), anomalies
}

// narratePortfolio prints the model narrative, degrading to silence: the
// deterministic report is already on screen.
func narratePortfolio(ctx context.Context, summary *stock.PortfolioSummary) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return
	}
	narrator := agent.NewNarrator()
	if err := narrator.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting narrator:", err)
		return
	}
	text, err := narrator.NarratePortfolio(ctx, summary)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error narrating portfolio:", err)
		return
	}
	printMarkdown(text)
}
