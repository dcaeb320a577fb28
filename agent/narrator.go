// Package agent produces plain-language narratives for analytics and
// portfolio reports using the Gemini API. Narration is strictly
// optional: every report carries a deterministic summary, and callers
// fall back to it whenever the model is unreachable or unconfigured.
package agent

import (
	"context"
	"fmt"
	"log"

	stock "github.com/NeoByte-Technology/RealTimeStock"
	"github.com/NeoByte-Technology/RealTimeStock/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Narrator is a chat with a market commentator. A single Narrator keeps
// its chat session across calls, so narrating several tickers in a row
// lets the model relate them.
type Narrator struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewNarrator returns a Narrator tuned for short, sober market notes.
func NewNarrator() *Narrator {
	return &Narrator{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market commentator for a retail investor on the BRVM,
			the West African regional stock exchange. You receive one report
			at a time: computed figures about a stock or a whole portfolio.

			Write a single short paragraph, plain language, no bullet
			points. Only use the figures you are given, never invent any.
			When a figure is marked n/a, say the history is too thin to
			tell, do not guess. Never give financial advice; a signal is a
			computed indicator, not a recommendation.
		`}}},
		},
	}
}

// Start opens the chat session. It must be called once before Narrate.
func (n *Narrator) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, n.ModelName, n.Config, nil)
	if err != nil {
		return err
	}
	n.chat = chat
	return nil
}

// Narrate turns one ticker's analytics report into a narrative
// paragraph. On any error the caller should degrade to report.Summary.
func (n *Narrator) Narrate(ctx context.Context, report *stock.AnalyticsReport) (string, error) {
	return n.ask(ctx, renderer.RenderAnalytics(report))
}

// NarratePortfolio turns a valued portfolio into a narrative paragraph.
func (n *Narrator) NarratePortfolio(ctx context.Context, summary *stock.PortfolioSummary) (string, error) {
	return n.ask(ctx, renderer.RenderSummary(summary))
}

func (n *Narrator) ask(ctx context.Context, report string) (string, error) {
	if n.chat == nil {
		return "", fmt.Errorf("narrator session not started")
	}
	resp, err := n.chat.Send(ctx, &genai.Part{Text: report})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from narrator")
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	log.Printf("narrator model=%s chars=%d", n.ModelName, len(text))
	return text, nil
}
