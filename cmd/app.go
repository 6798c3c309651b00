// Package cmd implements the CLI application to evaluate historical
// investment outcomes against MOEX price data.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&calcCmd{}, "analysis")

	c.Register(&fetchCmd{}, "market data")
	c.Register(&searchCmd{}, "market data")

	c.Register(&topicCmd{}, "documentation")
}

// printMarkdown renders a markdown report to the terminal, falling back to
// the raw text when the terminal renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
