// Package stock implements a portfolio accounting and stock analytics
// engine for BRVM securities.
//
// The package is split in two cooperating, side-effect-free components:
//
//   - the position ledger aggregator (Aggregate) folds an account's
//     transaction history into open positions with cost basis and
//     realized profit, using an average-cost policy by default;
//   - the valuation and analytics engine (ValuePortfolio, Analyze,
//     Signal) turns positions plus a price snapshot into a portfolio
//     summary, and a historical price series into a per-ticker
//     analytics report.
//
// Both components are pure: they read their arguments, allocate fresh
// results, and hold no cross-call state, so they are safe to call
// concurrently for different accounts or tickers. Market data may be
// partial; missing prices degrade the corresponding derived fields to
// nil instead of failing the computation.
//
// Persistence (JSONL transaction log, per-ticker price history) and the
// BRVM quote source live in this package too, but only the CLI in cmd/
// wires them together.
package stock
