package stock

import "fmt"

// AnomalyKind classifies the defects the engine tolerates.
type AnomalyKind string

const (
	// DataQuality flags a record or quote that was repaired or skipped:
	// an oversell clamped to the held quantity, a sale from a flat
	// position, a missing or stale quote. The computation continues.
	DataQuality AnomalyKind = "data-quality"
	// InvariantViolation flags a record that should never have reached
	// the fold (non-positive quantity or price, negative fees). The
	// record is rejected; the rest of the batch still computes.
	InvariantViolation AnomalyKind = "invariant-violation"
)

// Anomaly reports a single tolerated defect. The engine never aborts a
// batch on an anomaly; it collects them for the caller to surface.
type Anomaly struct {
	Kind    AnomalyKind
	Ticker  string
	Message string
}

func (a Anomaly) String() string {
	if a.Ticker == "" {
		return fmt.Sprintf("%s: %s", a.Kind, a.Message)
	}
	return fmt.Sprintf("%s: %s: %s", a.Kind, a.Ticker, a.Message)
}

func anomalyf(kind AnomalyKind, ticker, format string, args ...any) Anomaly {
	return Anomaly{Kind: kind, Ticker: ticker, Message: fmt.Sprintf(format, args...)}
}
