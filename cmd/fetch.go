package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/avoronov/timemachine/date"
	"github.com/avoronov/timemachine/moex"
	"github.com/google/subcommands"
)

// fetchCmd implements the "fetch" command.
type fetchCmd struct {
	ticker   string
	fromDate string
	tillDate string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches price history from the MOEX ISS API" }
func (*fetchCmd) Usage() string {
	return `itm fetch -t <ticker> [-from <date>] [-till <date>]

  Fetches daily close prices from iss.moex.com and prints one line per
  trading day. Useful to inspect the data 'itm calc' works with.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Instrument ticker (e.g. SBER, or IMOEX for the index)")
	f.StringVar(&c.fromDate, "from", "", "First day of the window. Defaults to one month before -till.")
	f.StringVar(&c.tillDate, "till", "", "Last day of the window. Defaults to yesterday.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "the -t ticker flag is required")
		return subcommands.ExitUsageError
	}

	till := date.Today().Add(-1)
	if c.tillDate != "" {
		var err error
		if till, err = date.Parse(c.tillDate); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing till date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	from := till.AddMonths(-1)
	if c.fromDate != "" {
		var err error
		if from, err = date.Parse(c.fromDate); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing from date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	series, err := moex.FetchHistory(moex.NewClient(), c.ticker, from, till)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, sample := range series {
		fmt.Printf("%s %s\n", sample.Date, sample.Close)
	}
	return subcommands.ExitSuccess
}
