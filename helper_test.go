package timemachine

import (
	"testing"

	"github.com/avoronov/timemachine/date"
)

// sample builds one price sample, prices in RUB like the MOEX feed.
func sample(day string, close float64) PriceSample {
	return PriceSample{Date: date.MustParse(day), Close: M(close, "RUB")}
}

// series builds a price series from (day, close) pairs.
func series(samples ...PriceSample) PriceSeries {
	return PriceSeries(samples)
}

// rub is a shorthand for a RUB amount.
func rub(v float64) Money { return M(v, "RUB") }

// mustResolve resolves a target date or fails the test.
func mustResolve(t *testing.T, s PriceSeries, target string) date.Date {
	t.Helper()
	d, err := s.Resolve(date.MustParse(target))
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", target, err)
	}
	return d
}
