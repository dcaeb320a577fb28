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

type analyzeCmd struct {
	offline bool
	peRatio float64
	narrate bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compute returns, volatility and trend for tickers" }
func (*analyzeCmd) Usage() string {
	return `analyze [-offline] [-pe <ratio>] [-narrate] <ticker>...

  Analyzes each ticker from its stored price history and the latest
  quote: daily and monthly returns, annualized volatility, moving
  averages, trend and crossover signal. Metrics the history cannot
  support show n/a.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Analyze from the stored history only, without fetching a quote")
	f.Float64Var(&c.peRatio, "pe", 0, "Price/earnings ratio to carry into the report")
	f.BoolVar(&c.narrate, "narrate", false, "Append a model-written narrative per ticker")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var narrator *agent.Narrator
	if c.narrate {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		} else {
			narrator = agent.NewNarrator()
			if err := narrator.Start(ctx, client); err != nil {
				fmt.Fprintln(os.Stderr, "Error starting narrator:", err)
				narrator = nil
			}
		}
	}

	var pe *float64
	if c.peRatio > 0 {
		pe = &c.peRatio
	}

	provider := stock.NewBRVM()
	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		series, err := DecodePrices(ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}

		var current stock.Money
		if last, ok := series.Last(); ok {
			current = last.Price
		}
		if !c.offline {
			quote, err := provider.Latest(ticker)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: no quote for %s, analyzing from history: %v\n", ticker, err)
			} else {
				current = quote.Price
			}
		}

		report := stock.Analyze(ticker, current, series, pe)
		printMarkdown(renderer.RenderAnalytics(&report))

		if narrator != nil {
			text, err := narrator.Narrate(ctx, &report)
			if err != nil {
				// The deterministic summary is the fallback narrative.
				fmt.Fprintf(os.Stderr, "warning: narrator unavailable for %s: %v\n", ticker, err)
				text = report.Summary
			}
			printMarkdown(text)
		}
	}
	return status
}
