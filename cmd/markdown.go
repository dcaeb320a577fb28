package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders a markdown report to the terminal. When the
// fancy renderer cannot be built, the raw markdown is still printed.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
