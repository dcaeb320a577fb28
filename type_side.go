package stock

import (
	"fmt"
	"strings"
)

// Side identifies the direction of a transaction.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a side string, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction side: %q", s)
	}
}

func (s Side) String() string { return string(s) }
