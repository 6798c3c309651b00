package timemachine

import (
	"fmt"
	"strings"

	"github.com/avoronov/timemachine/date"
)

// Frequency is how often an additional contribution is made.
type Frequency int

const (
	None Frequency = iota
	Monthly
	Quarterly
	Yearly
)

func (f Frequency) String() string {
	switch f {
	case None:
		return "none"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown frequency %d", f))
	}
}

// ParseFrequency parses a contribution frequency from its string form.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return None, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return None, fmt.Errorf("unknown frequency %q", s)
	}
}

// step advances a date by one period of the frequency, using calendar
// month/year arithmetic rather than fixed day counts.
func (f Frequency) step(d date.Date) date.Date {
	switch f {
	case Monthly:
		return d.AddMonths(1)
	case Quarterly:
		return d.AddMonths(3)
	case Yearly:
		return d.AddYears(1)
	default:
		panic(fmt.Sprintf("frequency %v cannot step", f))
	}
}

// ContributionPlan describes periodic additional purchases: a fixed amount
// invested at every step of the frequency. The amount is ignored when the
// frequency is None.
type ContributionPlan struct {
	Every  Frequency
	Amount Money
}

// NoContributions is the plan of a pure lump-sum investment.
var NoContributions = ContributionPlan{Every: None}

// Schedule expands the plan into target calendar dates between start and end.
// The first date is one period after start (start itself already holds the
// initial purchase), and stepping continues while the date is on or before
// end. A None plan yields no dates.
func (p ContributionPlan) Schedule(start, end date.Date) []date.Date {
	if p.Every == None {
		return nil
	}
	var dates []date.Date
	for d := p.Every.step(start); !d.After(end); d = p.Every.step(d) {
		dates = append(dates, d)
	}
	return dates
}
