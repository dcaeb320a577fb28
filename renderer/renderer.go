// Package renderer turns portfolio and analytics values into markdown
// reports. Rendering is template based: each report is a main template
// assembled from named partials, all embedded in the binary.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	stock "github.com/NeoByte-Technology/RealTimeStock"
)

//go:embed templates/*.md
var templates embed.FS

// RenderSummary renders a valued portfolio to a markdown string.
func RenderSummary(s *stock.PortfolioSummary) string {
	partials := map[string]string{
		"summary_title":     "templates/summary_title.md",
		"summary_positions": "templates/summary_positions.md",
		"summary_totals":    "templates/summary_totals.md",
	}
	return renderTemplate("summary", "templates/summary.md", partials, s)
}

// RenderAnalytics renders one ticker's analytics report to a markdown string.
func RenderAnalytics(r *stock.AnalyticsReport) string {
	partials := map[string]string{
		"analytics_title":   "templates/analytics_title.md",
		"analytics_metrics": "templates/analytics_metrics.md",
		"analytics_signal":  "templates/analytics_signal.md",
	}
	return renderTemplate("analytics", "templates/analytics.md", partials, r)
}

// RenderAlerts renders triggered alerts to a markdown string.
func RenderAlerts(alerts []stock.Alert) string {
	return renderTemplate("alerts", "templates/alerts.md", nil, alerts)
}

// RenderAnomalies renders collected anomalies to a markdown string.
func RenderAnomalies(anomalies []stock.Anomaly) string {
	return renderTemplate("anomalies", "templates/anomalies.md", nil, anomalies)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl := template.New(templateName).Funcs(helpers)
	if _, err := tmpl.Parse(string(mainContent)); err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
