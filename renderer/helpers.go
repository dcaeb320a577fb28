package renderer

import (
	"fmt"
	"text/template"

	stock "github.com/NeoByte-Technology/RealTimeStock"
)

// helpers are the formatting functions available to all templates.
// Market fields are nullable: a missing quote renders as "n/a" so a
// degraded report still lines up.
var helpers = template.FuncMap{
	"money":       money,
	"signedMoney": signedMoney,
	"pct":         pct,
	"ratio":       ratio,
}

func money(m *stock.Money) string {
	if m == nil {
		return "n/a"
	}
	return m.String()
}

func signedMoney(m *stock.Money) string {
	if m == nil {
		return "n/a"
	}
	return m.SignedString()
}

func pct(p *stock.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.SignedString()
}

func ratio(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *f)
}
