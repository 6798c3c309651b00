package timemachine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/avoronov/timemachine/date"
)

// ErrEmptySeries is returned when a computation is attempted on a price
// series with no samples.
var ErrEmptySeries = errors.New("price series is empty")

// ErrNoPrice is returned when no closing price exists at a resolved trading
// date. Given Resolve's contract this should be unreachable, but it is
// checked rather than assumed.
var ErrNoPrice = errors.New("no closing price at resolved date")

// PriceSample is one trading day's closing price.
type PriceSample struct {
	Date  date.Date `json:"date"`
	Close Money     `json:"close"`
}

// PriceSeries is a daily closing-price history: unique by date, ascending,
// with strictly positive closes. The upstream collaborator (see the moex
// package) is responsible for filtering out the zero closes the exchange
// sometimes emits.
type PriceSeries []PriceSample

// sorted returns a copy of the series in ascending date order.
// Lookups never trust the caller to have sorted the samples.
func (s PriceSeries) sorted() PriceSeries {
	if sort.SliceIsSorted(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) }) {
		return s
	}
	c := make(PriceSeries, len(s))
	copy(c, s)
	sort.Slice(c, func(i, j int) bool { return c[i].Date.Before(c[j].Date) })
	return c
}

// Resolve maps an arbitrary calendar date to the nearest actual trading date
// in the series: the exact date when present, otherwise the earliest later
// trading date, otherwise the last date of the series.
func (s PriceSeries) Resolve(target date.Date) (date.Date, error) {
	if len(s) == 0 {
		return date.Date{}, ErrEmptySeries
	}
	sorted := s.sorted()
	for _, sample := range sorted {
		if !sample.Date.Before(target) {
			return sample.Date, nil
		}
	}
	return sorted[len(sorted)-1].Date, nil
}

// CloseOn returns the closing price on the given trading date.
func (s PriceSeries) CloseOn(day date.Date) (Money, bool) {
	for _, sample := range s {
		if sample.Date == day {
			return sample.Close, true
		}
	}
	return Money{}, false
}

// First returns the earliest sample of the series.
func (s PriceSeries) First() PriceSample { return s.sorted()[0] }

// Last returns the latest sample of the series.
func (s PriceSeries) Last() PriceSample { return s.sorted()[len(s)-1] }

// Validate checks the series invariant: non-empty, strictly ascending dates
// (which also implies uniqueness), strictly positive closes.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, sample := range s {
		if !sample.Close.IsPositive() {
			return fmt.Errorf("non-positive close %s on %s", sample.Close, sample.Date)
		}
		if i > 0 && !s[i-1].Date.Before(sample.Date) {
			return fmt.Errorf("dates out of order: %s then %s", s[i-1].Date, sample.Date)
		}
	}
	return nil
}
