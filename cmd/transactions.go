package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/google/subcommands"
)

// today returns the current day, the granularity of the ledger.
func today() string { return time.Now().UTC().Format("2006-01-02") }

// parseDay parses a YYYY-MM-DD ledger date.
func parseDay(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return day.UTC(), nil
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	ticker   string
	name     string
	quantity float64
	price    float64
	fees     float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -t <ticker> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <memo>]

  Purchases shares of a stock. The cost basis of the position grows by
  quantity x price plus fees.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", today(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Stock ticker")
	f.StringVar(&c.name, "name", "", "An optional company name")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fees, "fees", 0, "Broker fees for the whole transaction")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 || c.fees < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := stock.NewBuy(day, c.ticker, stock.Q(c.quantity), stock.XOF(c.price), stock.XOF(c.fees))
	tx.Name = c.name
	tx.Memo = c.memo
	return appendTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	fees     float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -t <ticker> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <memo>]

  Sells shares of a stock. The realized profit of the position moves by
  the proceeds minus the cost of the sold shares.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", today(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Stock ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fees, "fees", 0, "Broker fees for the whole transaction")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 || c.fees < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := stock.NewSell(day, c.ticker, stock.Q(c.quantity), stock.XOF(c.price), stock.XOF(c.fees))
	tx.Memo = c.memo
	return appendTransaction(tx)
}

// --- Record Command ---

type recordCmd struct {
	date string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a transaction from a free-form text line" }
func (*recordCmd) Usage() string {
	return `record [-d <date>] "BUY SNTS 100 @ 5000"

  Records a transaction written the way a broker SMS or a chat message
  would phrase it: side, ticker, quantity, @, unit price, and an
  optional currency.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", today(), "Transaction date (YYYY-MM-DD)")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.TrimSpace(strings.Join(f.Args(), " "))
	if text == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := stock.ParseTransactionText(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx.OccurredAt = day
	return appendTransaction(tx)
}
