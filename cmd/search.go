package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/avoronov/timemachine/moex"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct {
	all bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for instruments on MOEX" }
func (*searchCmd) Usage() string {
	return `itm search <search term>

  Searches instruments by ticker, name or ISIN via the MOEX ISS API and
  prints the tickers ready to use with 'itm calc -t'.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include instruments that are no longer traded")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	results, err := moex.Search(moex.NewClient(), term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	shown := 0
	for _, item := range results {
		if !item.IsTraded && !c.all {
			continue
		}
		fmt.Printf("➡️   %-12s %s\n", item.SecID, item.ShortName)
		fmt.Printf("    ISIN: %s, Board: %s\n", item.ISIN, item.Board)
		shown++
	}
	if shown == 0 {
		fmt.Printf("No results found for '%s'.\n", term)
	}
	return subcommands.ExitSuccess
}
