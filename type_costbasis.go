package stock

import "fmt"

// CostBasisMethod defines the method for calculating cost basis.
//
// AverageCost is the house policy: each unit's cost is the running
// average of all unit costs acquired, regardless of purchase order.
// FIFO and LIFO are lot-accounting variants kept behind the same
// aggregation contract.
type CostBasisMethod int

const (
	// AverageCost calculates the cost basis by averaging the cost of all shares.
	AverageCost CostBasisMethod = iota
	// FIFO assumes the first shares purchased are the first ones sold.
	FIFO
	// LIFO assumes the last shares purchased are the first ones sold.
	LIFO
)

func (m CostBasisMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch s {
	case "average":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}
