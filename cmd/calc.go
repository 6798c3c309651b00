package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/avoronov/timemachine"
	"github.com/avoronov/timemachine/date"
	"github.com/avoronov/timemachine/moex"
	"github.com/avoronov/timemachine/renderer"
	"github.com/google/subcommands"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	ticker       string
	buyDate      string
	sellDate     string
	amount       float64
	every        string
	contribution float64
	asJSON       bool
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "evaluate the historical outcome of an investment" }
func (*calcCmd) Usage() string {
	return `itm calc -t <ticker> [-b <date>] [-s <date>] [-amount <rub>] [-every <frequency> -contribution <rub>] [-json]

  Buys the instrument on the buy date, optionally keeps contributing a fixed
  amount every period, sells everything on the sell date, and reports profit,
  ROI, IRR and CAGR together with the transaction ledger.

Usage Examples:
# A lump sum of 100000 rub held for four years.
$ itm calc -t SBER -b 2020-01-10 -s 2024-01-10 -amount 100000

# The same with 10000 rub added every month.
$ itm calc -t SBER -b 2020-01-10 -s 2024-01-10 -amount 100000 -every monthly -contribution 10000
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Instrument ticker (e.g. SBER, or IMOEX for the index)")
	f.StringVar(&c.buyDate, "b", "", "Buy date. Defaults to one month before the sell date.")
	f.StringVar(&c.sellDate, "s", "", "Sell date. Defaults to yesterday.")
	f.Float64Var(&c.amount, "amount", 10000, "Initial amount to invest, in rubles")
	f.StringVar(&c.every, "every", "none", "Contribution frequency (none, monthly, quarterly, yearly)")
	f.Float64Var(&c.contribution, "contribution", 0, "Amount contributed every period, in rubles")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw result as JSON instead of a report")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "the -t ticker flag is required")
		return subcommands.ExitUsageError
	}

	// Default window: one month ending yesterday, like the original form.
	sell := date.Today().Add(-1)
	if c.sellDate != "" {
		var err error
		if sell, err = date.Parse(c.sellDate); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing sell date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	buy := sell.AddMonths(-1)
	if c.buyDate != "" {
		var err error
		if buy, err = date.Parse(c.buyDate); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing buy date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if buy.After(sell) {
		fmt.Fprintf(os.Stderr, "buy date %s is after sell date %s\n", buy, sell)
		return subcommands.ExitUsageError
	}

	every, err := timemachine.ParseFrequency(c.every)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing frequency: %v\n", err)
		return subcommands.ExitUsageError
	}
	plan := timemachine.NoContributions
	if every != timemachine.None {
		if c.contribution <= 0 {
			fmt.Fprintln(os.Stderr, "-every requires a positive -contribution amount")
			return subcommands.ExitUsageError
		}
		plan = timemachine.ContributionPlan{Every: every, Amount: timemachine.M(c.contribution, "RUB")}
	}

	series, err := moex.FetchHistory(moex.NewClient(), c.ticker, buy, sell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := timemachine.ComputeReturn(c.ticker, buy, sell, timemachine.M(c.amount, "RUB"), plan, series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderResult(renderer.NewResult(result)))
	return subcommands.ExitSuccess
}
