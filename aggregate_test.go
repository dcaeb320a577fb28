package stock

import (
	"math/rand"
	"testing"
)

// sonatelLedger is the canonical worked example used across tests:
// two buys at different prices, then a partial sale.
func sonatelLedger() []Transaction {
	return []Transaction{
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0)),
		NewBuy(day(2), "SNTS", Q(50), XOF(5200), XOF(0)),
		NewSell(day(3), "SNTS", Q(100), XOF(5500), XOF(0)),
	}
}

func TestAggregate_BuysOnly(t *testing.T) {
	result := Aggregate([]Transaction{
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(500)),
		NewBuy(day(2), "snts", Q(50), XOF(5200), XOF(250)),
	}, AverageCost)

	if len(result.Anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", result.Anomalies)
	}
	pos, ok := result.Position("SNTS")
	if !ok {
		t.Fatal("expected an open SNTS position")
	}
	if !pos.QuantityHeld.Equal(Q(150)) {
		t.Errorf("QuantityHeld = %s, want 150", pos.QuantityHeld)
	}
	// 100*5000+500 + 50*5200+250 = 760750
	assertMoney(t, "CostBasis", pos.CostBasis, 760750)
	assertMoney(t, "RealizedProfit", pos.RealizedProfit, 0)
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 0)
}

func TestAggregate_AverageCostSale(t *testing.T) {
	result := Aggregate(sonatelLedger(), AverageCost)

	pos, ok := result.Position("SNTS")
	if !ok {
		t.Fatal("expected an open SNTS position")
	}
	if !pos.QuantityHeld.Equal(Q(50)) {
		t.Errorf("QuantityHeld = %s, want 50", pos.QuantityHeld)
	}
	// Average cost 760000/150 = 5066.67; selling 100 removes 506666.67.
	assertMoney(t, "CostBasis", pos.CostBasis, 253333.33)
	assertMoney(t, "AverageCost", pos.AverageCost(), 5066.67)
	assertMoney(t, "RealizedProfit", pos.RealizedProfit, 43333.33)
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 43333.33)
}

func TestAggregate_CostBasisMethods(t *testing.T) {
	testCases := []struct {
		method       CostBasisMethod
		wantBasis    float64
		wantRealized float64
	}{
		// Selling 100 of the 150 held:
		// average burns 100 units at 5066.67
		{AverageCost, 253333.33, 43333.33},
		// fifo burns the whole first lot (100@5000)
		{FIFO, 260000, 50000},
		// lifo burns the 50@5200 lot then 50 from the first
		{LIFO, 250000, 40000},
	}
	for _, tc := range testCases {
		t.Run(tc.method.String(), func(t *testing.T) {
			result := Aggregate(sonatelLedger(), tc.method)
			pos, ok := result.Position("SNTS")
			if !ok {
				t.Fatal("expected an open SNTS position")
			}
			if !pos.QuantityHeld.Equal(Q(50)) {
				t.Errorf("QuantityHeld = %s, want 50", pos.QuantityHeld)
			}
			assertMoney(t, "CostBasis", pos.CostBasis, tc.wantBasis)
			assertMoney(t, "RealizedProfit", pos.RealizedProfit, tc.wantRealized)
		})
	}
}

func TestAggregate_ClosedPositionKeepsCarry(t *testing.T) {
	result := Aggregate([]Transaction{
		NewBuy(day(1), "BOAB", Q(10), XOF(3500), XOF(0)),
		NewSell(day(2), "BOAB", Q(10), XOF(4000), XOF(100)),
	}, AverageCost)

	if len(result.Positions) != 0 {
		t.Fatalf("closed position should be dropped, got %v", result.Positions)
	}
	// 10*(4000-3500) - 100 fees
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 4900)
}

func TestAggregate_OversellClamped(t *testing.T) {
	result := Aggregate([]Transaction{
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0)),
		NewSell(day(2), "SNTS", Q(150), XOF(5500), XOF(300)),
	}, AverageCost)

	if len(result.Positions) != 0 {
		t.Fatalf("fully sold position should be dropped, got %v", result.Positions)
	}
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != DataQuality {
		t.Fatalf("expected one data-quality anomaly, got %v", result.Anomalies)
	}
	// Only 100 of 150 applied, so fees pro-rate to 300*100/150 = 200.
	// Realized = 100*5500 - 200 - 500000 = 49800.
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 49800)
}

func TestAggregate_SellFromFlatPosition(t *testing.T) {
	result := Aggregate([]Transaction{
		NewSell(day(1), "ETIT", Q(10), XOF(20), XOF(5)),
	}, AverageCost)

	if len(result.Positions) != 0 {
		t.Fatalf("no position should open, got %v", result.Positions)
	}
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != DataQuality {
		t.Fatalf("expected one data-quality anomaly, got %v", result.Anomalies)
	}
	// Pure proceeds at zero cost: 10*20 - 5.
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 195)
}

func TestAggregate_RejectsMalformedRecords(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{"missing ticker", NewBuy(day(1), " ", Q(10), XOF(100), XOF(0))},
		{"zero quantity", NewBuy(day(1), "SNTS", Q(0), XOF(100), XOF(0))},
		{"negative quantity", NewBuy(day(1), "SNTS", Q(-5), XOF(100), XOF(0))},
		{"zero price", NewBuy(day(1), "SNTS", Q(10), XOF(0), XOF(0))},
		{"negative fees", NewBuy(day(1), "SNTS", Q(10), XOF(100), XOF(-1))},
		{"unknown side", Transaction{Ticker: "SNTS", Side: "SHORT", Quantity: Q(10), UnitPrice: XOF(100), OccurredAt: day(1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			good := NewBuy(day(2), "BOAB", Q(10), XOF(3500), XOF(0))
			result := Aggregate([]Transaction{tc.tx, good}, AverageCost)

			if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != InvariantViolation {
				t.Fatalf("expected one invariant-violation anomaly, got %v", result.Anomalies)
			}
			// The rest of the batch still computes.
			if _, ok := result.Position("BOAB"); !ok {
				t.Error("valid record should still aggregate")
			}
		})
	}
}

func TestAggregate_OrderIndependence(t *testing.T) {
	ledger := []Transaction{
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0)),
		NewBuy(day(2), "SNTS", Q(50), XOF(5200), XOF(0)),
		NewSell(day(3), "SNTS", Q(100), XOF(5500), XOF(0)),
		NewBuy(day(1), "BOAB", Q(10), XOF(3500), XOF(0)),
		NewSell(day(4), "BOAB", Q(5), XOF(3600), XOF(0)),
	}
	want := Aggregate(ledger, FIFO)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]Transaction(nil), ledger...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Aggregate(shuffled, FIFO)
		if len(got.Positions) != len(want.Positions) {
			t.Fatalf("shuffle %d: %d positions, want %d", i, len(got.Positions), len(want.Positions))
		}
		for j, pos := range got.Positions {
			ref := want.Positions[j]
			if pos.Ticker != ref.Ticker || !pos.QuantityHeld.Equal(ref.QuantityHeld) ||
				!pos.CostBasis.Equal(ref.CostBasis) || !pos.RealizedProfit.Equal(ref.RealizedProfit) {
				t.Errorf("shuffle %d: position %s differs from chronological fold", i, pos.Ticker)
			}
		}
	}
}

func TestAggregate_ChronologicalFold(t *testing.T) {
	// The sale happens on day 2, between the two buys: only the first buy
	// is in the basis when it folds, whatever the slice order says.
	ledger := []Transaction{
		NewBuy(day(3), "SNTS", Q(50), XOF(5200), XOF(0)),
		NewSell(day(2), "SNTS", Q(50), XOF(5500), XOF(0)),
		NewBuy(day(1), "SNTS", Q(100), XOF(5000), XOF(0)),
	}
	result := Aggregate(ledger, AverageCost)

	pos, ok := result.Position("SNTS")
	if !ok {
		t.Fatal("expected an open SNTS position")
	}
	if !pos.QuantityHeld.Equal(Q(100)) {
		t.Errorf("QuantityHeld = %s, want 100", pos.QuantityHeld)
	}
	// Sale of 50 at 5500 against an average of 5000: realized 25000.
	assertMoney(t, "RealizedProfit", pos.RealizedProfit, 25000)
	// 500000 - 50*5000 + 260000
	assertMoney(t, "CostBasis", pos.CostBasis, 510000)
}

func TestAggregate_EmptyLedger(t *testing.T) {
	result := Aggregate(nil, AverageCost)
	if len(result.Positions) != 0 || len(result.Anomalies) != 0 {
		t.Fatalf("empty ledger should aggregate to nothing, got %+v", result)
	}
	assertMoney(t, "RealizedCarry", result.RealizedCarry, 0)
}
