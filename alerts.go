package stock

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// AlertKind identifies the condition an alert rule watches.
type AlertKind string

const (
	// PriceAbove triggers when the quoted price reaches the threshold.
	PriceAbove AlertKind = "price_above"
	// PriceBelow triggers when the quoted price falls to the threshold.
	PriceBelow AlertKind = "price_below"
	// LossPct triggers when a position's unrealized loss reaches the
	// threshold, in percent of its cost basis.
	LossPct AlertKind = "loss_pct"
	// GainPct triggers when a position's unrealized gain reaches the
	// threshold, in percent of its cost basis.
	GainPct AlertKind = "gain_pct"
)

// ParseAlertKind parses an alert kind string.
func ParseAlertKind(s string) (AlertKind, error) {
	switch AlertKind(strings.ToLower(strings.TrimSpace(s))) {
	case PriceAbove:
		return PriceAbove, nil
	case PriceBelow:
		return PriceBelow, nil
	case LossPct:
		return LossPct, nil
	case GainPct:
		return GainPct, nil
	default:
		return "", fmt.Errorf("unknown alert kind: %q", s)
	}
}

// AlertRule is a user-defined watch condition on one ticker.
type AlertRule struct {
	Ticker    string    `json:"ticker"`
	Kind      AlertKind `json:"kind"`
	Threshold float64   `json:"threshold"`
}

// Alert is a triggered rule with a ready-to-send message.
type Alert struct {
	Rule    AlertRule
	Message string
}

// CheckAlerts evaluates rules against a valued portfolio and a price
// snapshot. Price rules only need a quote; loss/gain rules need the
// position's unrealized percentage. Rules whose data is missing are
// silently skipped: alerting is best-effort by design.
func CheckAlerts(rules []AlertRule, summary PortfolioSummary, lookup PriceLookup) []Alert {
	var triggered []Alert
	for _, rule := range rules {
		ticker := NormalizeTicker(rule.Ticker)
		switch rule.Kind {
		case PriceAbove, PriceBelow:
			price, ok := lookup(ticker)
			if !ok || !price.IsPositive() {
				continue
			}
			value := price.InexactFloat64()
			if rule.Kind == PriceAbove && value >= rule.Threshold {
				triggered = append(triggered, Alert{Rule: rule,
					Message: fmt.Sprintf("%s price %s >= %.0f %s", ticker, price.Decimal(), rule.Threshold, price.Currency())})
			}
			if rule.Kind == PriceBelow && value <= rule.Threshold {
				triggered = append(triggered, Alert{Rule: rule,
					Message: fmt.Sprintf("%s price %s <= %.0f %s", ticker, price.Decimal(), rule.Threshold, price.Currency())})
			}
		case LossPct:
			pos, ok := summary.Position(ticker)
			if !ok || pos.UnrealizedPct == nil {
				continue
			}
			if float64(*pos.UnrealizedPct) <= -rule.Threshold {
				triggered = append(triggered, Alert{Rule: rule,
					Message: fmt.Sprintf("%s loss %.1f%% past threshold %.1f%%", ticker, float64(*pos.UnrealizedPct), rule.Threshold)})
			}
		case GainPct:
			pos, ok := summary.Position(ticker)
			if !ok || pos.UnrealizedPct == nil {
				continue
			}
			if float64(*pos.UnrealizedPct) >= rule.Threshold {
				triggered = append(triggered, Alert{Rule: rule,
					Message: fmt.Sprintf("%s gain %.1f%% past threshold %.1f%%", ticker, float64(*pos.UnrealizedPct), rule.Threshold)})
			}
		}
	}
	return triggered
}

// CheckPortfolioDrift produces daily-digest alerts for every position
// whose unrealized move exceeds the loss or gain threshold, both in
// percent. Nil thresholds disable the corresponding side.
func CheckPortfolioDrift(summary PortfolioSummary, lossThreshold, gainThreshold *float64) []Alert {
	var rules []AlertRule
	for _, pos := range summary.Positions {
		if lossThreshold != nil {
			rules = append(rules, AlertRule{Ticker: pos.Ticker, Kind: LossPct, Threshold: *lossThreshold})
		}
		if gainThreshold != nil {
			rules = append(rules, AlertRule{Ticker: pos.Ticker, Kind: GainPct, Threshold: *gainThreshold})
		}
	}
	return CheckAlerts(rules, summary, func(string) (Money, bool) { return Money{}, false })
}

// DecodeAlertRules reads alert rules from a JSONL stream. Unlike the
// ledger, a bad rule line is skipped, not fatal: rules are user notes,
// not accounting facts.
func DecodeAlertRules(r io.Reader) ([]AlertRule, []Anomaly, error) {
	var rules []AlertRule
	var anomalies []Anomaly
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rule AlertRule
		if err := json.Unmarshal(lineBytes, &rule); err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, "", "skip alert rule line %d: %v", line, err))
			continue
		}
		if _, err := ParseAlertKind(string(rule.Kind)); err != nil {
			anomalies = append(anomalies, anomalyf(DataQuality, rule.Ticker, "skip alert rule line %d: %v", line, err))
			continue
		}
		rule.Ticker = NormalizeTicker(rule.Ticker)
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, anomalies, fmt.Errorf("error reading alert rules: %w", err)
	}
	return rules, anomalies, nil
}

// EncodeAlertRules persists alert rules in JSONL form.
func EncodeAlertRules(w io.Writer, rules []AlertRule) error {
	for _, rule := range rules {
		data, err := json.Marshal(rule)
		if err != nil {
			return fmt.Errorf("failed to marshal alert rule: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write alert rule: %w", err)
		}
	}
	return nil
}
