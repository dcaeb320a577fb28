package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/NeoByte-Technology/RealTimeStock/renderer"
	"github.com/google/subcommands"
)

type alertsCmd struct {
	method  string
	workers int
	loss    float64
	gain    float64
}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "evaluate alert rules against current quotes" }
func (*alertsCmd) Usage() string {
	return `alerts [-loss <pct>] [-gain <pct>]

  Evaluates the alert rules file against current quotes and the valued
  portfolio. The -loss and -gain thresholds additionally watch every
  held position for unrealized drift, without a written rule.
`
}

func (c *alertsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "average", "Cost basis method (average, fifo, lifo)")
	f.IntVar(&c.workers, "workers", 4, "Number of concurrent quote fetches")
	f.Float64Var(&c.loss, "loss", 0, "Alert when a position's unrealized loss exceeds this percentage")
	f.Float64Var(&c.gain, "gain", 0, "Alert when a position's unrealized gain exceeds this percentage")
}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := stock.ParseCostBasisMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rules, anomalies, err := DecodeAlertRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	reportAnomalies(anomalies)

	transactions, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	result := stock.Aggregate(transactions, method)
	reportAnomalies(result.Anomalies)

	// The watched tickers are the held ones plus the ones named by rules.
	tickers := make([]string, 0, len(result.Positions)+len(rules))
	for _, pos := range result.Positions {
		tickers = append(tickers, pos.Ticker)
	}
	for _, rule := range rules {
		if _, held := result.Position(rule.Ticker); !held {
			tickers = append(tickers, rule.Ticker)
		}
	}

	prices, anomalies := stock.FetchPrices(tickers, stock.NewBRVM(), c.workers)
	reportAnomalies(anomalies)
	lookup := stock.SnapshotLookup(prices)
	summary := stock.ValuePortfolio(result.Positions, lookup)

	triggered := stock.CheckAlerts(rules, summary, lookup)
	var loss, gain *float64
	if c.loss > 0 {
		loss = &c.loss
	}
	if c.gain > 0 {
		gain = &c.gain
	}
	triggered = append(triggered, stock.CheckPortfolioDrift(summary, loss, gain)...)

	printMarkdown(renderer.RenderAlerts(triggered))
	if len(triggered) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
