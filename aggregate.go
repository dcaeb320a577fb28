package stock

import (
	"maps"
	"slices"
)

// Position is the derived state of one ticker after folding the account's
// transaction history. Positions are recomputed from scratch on every call
// and never persisted.
type Position struct {
	Ticker         string
	Name           string
	QuantityHeld   Quantity
	CostBasis      Money // Total cost remaining in the open quantity.
	RealizedProfit Money // Cumulative profit locked in by this ticker's sales.
}

// AverageCost returns CostBasis/QuantityHeld, or a zero amount when the
// position is flat.
func (p Position) AverageCost() Money {
	if p.QuantityHeld.IsZero() {
		return M(0, p.CostBasis.Currency())
	}
	return p.CostBasis.Div(p.QuantityHeld)
}

// AggregateResult is the output of one aggregation pass.
type AggregateResult struct {
	// Positions holds the open positions (quantity > 0), ordered by ticker.
	Positions []Position
	// Anomalies collects rejected records and data-quality warnings. The
	// fold never aborts on them.
	Anomalies []Anomaly
	// RealizedCarry is the account-level realized profit, including the
	// profit of tickers whose position closed and was dropped from
	// Positions.
	RealizedCarry Money
}

// Position returns the open position for a ticker, if any.
func (r AggregateResult) Position(ticker string) (Position, bool) {
	ticker = NormalizeTicker(ticker)
	for _, p := range r.Positions {
		if p.Ticker == ticker {
			return p, true
		}
	}
	return Position{}, false
}

// tickerState is the per-ticker running balance of the fold.
type tickerState struct {
	name     string
	quantity Quantity
	basis    Money
	realized Money
	lots     lots // only maintained for FIFO/LIFO
}

// Aggregate folds an account's transactions into current positions using
// the given cost basis method. The input is stable-sorted ascending by
// OccurredAt before folding, so two calls with the same transaction set
// produce identical results regardless of input order.
//
// Malformed records are rejected one by one; an oversell is clamped to the
// held quantity and reported, with the order's fees pro-rated over the
// fraction actually applied. A sale from a flat position contributes pure
// proceeds at zero cost. None of these aborts the fold.
func Aggregate(transactions []Transaction, method CostBasisMethod) AggregateResult {
	var result AggregateResult
	states := make(map[string]*tickerState)

	for _, raw := range byDate(transactions) {
		tx, err := raw.Validate()
		if err != nil {
			result.Anomalies = append(result.Anomalies,
				anomalyf(InvariantViolation, NormalizeTicker(raw.Ticker), "rejected record: %v", err))
			continue
		}

		st := states[tx.Ticker]
		if st == nil {
			st = &tickerState{
				quantity: Q(0),
				basis:    M(0, tx.Currency()),
				realized: M(0, tx.Currency()),
			}
			states[tx.Ticker] = st
		}
		if st.name == "" {
			st.name = tx.Name
		}

		switch tx.Side {
		case Buy:
			st.quantity = st.quantity.Add(tx.Quantity)
			st.basis = st.basis.Add(tx.Cost())
			st.lots = append(st.lots, lot{Quantity: tx.Quantity, Cost: tx.Cost()})

		case Sell:
			if st.quantity.IsZero() {
				// Nothing held: the sale is pure proceeds at zero cost.
				result.Anomalies = append(result.Anomalies,
					anomalyf(DataQuality, tx.Ticker, "sell of %s with no open position", tx.Quantity))
				st.realized = st.realized.Add(tx.UnitPrice.Mul(tx.Quantity).Sub(tx.Fees))
				continue
			}

			sellQty := tx.Quantity.Min(st.quantity)
			if sellQty.LessThan(tx.Quantity) {
				result.Anomalies = append(result.Anomalies,
					anomalyf(DataQuality, tx.Ticker, "sell of %s exceeds held quantity %s, clamped", tx.Quantity, st.quantity))
			}

			var costRemoved Money
			switch method {
			case FIFO, LIFO:
				costRemoved = st.lots.costOfSelling(sellQty, method)
				st.lots = st.lots.sell(sellQty, method)
			default:
				costRemoved = st.basis.Div(st.quantity).Mul(sellQty)
			}

			// Fees are pro-rated over the fraction of the order applied.
			feesApplied := tx.Fees.Mul(sellQty).Div(tx.Quantity)
			proceeds := tx.UnitPrice.Mul(sellQty).Sub(feesApplied)

			st.realized = st.realized.Add(proceeds.Sub(costRemoved))
			st.basis = st.basis.Sub(costRemoved)
			st.quantity = st.quantity.Sub(sellQty)
		}
	}

	for _, ticker := range slices.Sorted(maps.Keys(states)) {
		st := states[ticker]
		result.RealizedCarry = result.RealizedCarry.Add(st.realized)
		if !st.quantity.IsPositive() {
			// Closed position: dropped, realized profit kept in the carry.
			continue
		}
		result.Positions = append(result.Positions, Position{
			Ticker:         ticker,
			Name:           st.name,
			QuantityHeld:   st.quantity,
			CostBasis:      st.basis,
			RealizedProfit: st.realized,
		})
	}
	return result
}
