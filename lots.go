package stock

// lot represents a single purchase of a security, used for the FIFO and
// LIFO cost basis variants.
type lot struct {
	Quantity Quantity
	Cost     Money // Total cost of the lot (quantity*price + fees).
}

type lots []lot

// consumptionOrder returns the lot indices in the order the method burns
// them: oldest first for FIFO, newest first for LIFO.
func (l lots) consumptionOrder(method CostBasisMethod) []int {
	order := make([]int, len(l))
	for i := range l {
		if method == LIFO {
			order[i] = len(l) - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

// costOfSelling calculates the cost basis removed by selling the given
// quantity, without mutating the lots.
func (l lots) costOfSelling(quantityToSell Quantity, method CostBasisMethod) Money {
	var costOfSoldShares Money
	for _, i := range l.consumptionOrder(method) {
		if quantityToSell.IsZero() {
			break
		}
		currentLot := l[i]
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot.
			costOfSoldShares = costOfSoldShares.Add(currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity))
			return costOfSoldShares
		}
		// Full sale of this lot.
		costOfSoldShares = costOfSoldShares.Add(currentLot.Cost)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	return costOfSoldShares
}

// sell reduces the available lots by a quantity to sell, burning lots in
// the method's consumption order. Remaining lots keep their original
// chronological order.
func (l lots) sell(quantityToSell Quantity, method CostBasisMethod) lots {
	consumed := make([]Quantity, len(l))
	for _, i := range l.consumptionOrder(method) {
		if quantityToSell.IsZero() {
			break
		}
		currentLot := l[i]
		take := currentLot.Quantity.Min(quantityToSell)
		consumed[i] = take
		quantityToSell = quantityToSell.Sub(take)
	}

	var remaining lots
	for i, currentLot := range l {
		left := currentLot.Quantity.Sub(consumed[i])
		if !left.IsPositive() {
			continue
		}
		if consumed[i].IsZero() {
			remaining = append(remaining, currentLot)
			continue
		}
		soldCost := currentLot.Cost.Mul(consumed[i]).Div(currentLot.Quantity)
		remaining = append(remaining, lot{
			Quantity: left,
			Cost:     currentLot.Cost.Sub(soldCost),
		})
	}
	return remaining
}
