package timemachine

import (
	"errors"
	"testing"

	"github.com/avoronov/timemachine/date"
)

func tradingDays() PriceSeries {
	// A week with a weekend gap: Thu, Fri, Mon.
	return series(
		sample("2024-01-04", 100),
		sample("2024-01-05", 101),
		sample("2024-01-08", 103),
	)
}

func TestResolve(t *testing.T) {
	s := tradingDays()
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"exact match", "2024-01-05", "2024-01-05"},
		{"weekend rolls forward", "2024-01-06", "2024-01-08"},
		{"before the series", "2024-01-01", "2024-01-04"},
		{"beyond the series", "2024-02-01", "2024-01-08"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustResolve(t, s, tc.target)
			if got.String() != tc.want {
				t.Errorf("Resolve(%s) = %s, want %s", tc.target, got, tc.want)
			}
		})
	}
}

func TestResolve_unsortedInput(t *testing.T) {
	// The resolver must not trust the caller to have sorted the samples.
	s := series(
		sample("2024-01-08", 103),
		sample("2024-01-04", 100),
		sample("2024-01-05", 101),
	)
	if got := mustResolve(t, s, "2024-01-06"); got.String() != "2024-01-08" {
		t.Errorf("Resolve on unsorted series = %s, want 2024-01-08", got)
	}
}

func TestResolve_idempotent(t *testing.T) {
	s := tradingDays()
	for _, target := range []string{"2024-01-01", "2024-01-05", "2024-01-06", "2024-03-01"} {
		once := mustResolve(t, s, target)
		twice, err := s.Resolve(once)
		if err != nil {
			t.Fatalf("second Resolve failed: %v", err)
		}
		if once != twice {
			t.Errorf("Resolve(%s) not idempotent: %s then %s", target, once, twice)
		}
	}
}

func TestResolve_emptySeries(t *testing.T) {
	var s PriceSeries
	if _, err := s.Resolve(date.MustParse("2024-01-01")); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Resolve on empty series: got %v, want ErrEmptySeries", err)
	}
}

func TestCloseOn(t *testing.T) {
	s := tradingDays()
	if close, ok := s.CloseOn(date.MustParse("2024-01-05")); !ok || !close.Equal(rub(101)) {
		t.Errorf("CloseOn(2024-01-05) = %v, %v, want 101, true", close, ok)
	}
	if _, ok := s.CloseOn(date.MustParse("2024-01-06")); ok {
		t.Error("CloseOn(non-trading day) should report no price")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       PriceSeries
		wantErr bool
	}{
		{"valid", tradingDays(), false},
		{"empty", nil, true},
		{"zero close", series(sample("2024-01-04", 0)), true},
		{"duplicate date", series(sample("2024-01-04", 100), sample("2024-01-04", 101)), true},
		{"out of order", series(sample("2024-01-05", 101), sample("2024-01-04", 100)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
