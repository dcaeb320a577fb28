package stock

import "fmt"

// Percent is a derived ratio expressed in percent. Unlike Money and
// Quantity it is a plain float64: percentages are presentation values,
// not accounting values.
type Percent float64

// Pct returns a pointer to p, for the nullable report fields.
func Pct(p Percent) *Percent { return &p }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
