package renderer

import (
	"strings"
	"testing"

	"github.com/avoronov/timemachine"
	"github.com/avoronov/timemachine/date"
)

func computedResult(t *testing.T) *timemachine.CalcResult {
	t.Helper()
	series := timemachine.PriceSeries{
		{Date: date.MustParse("2024-01-02"), Close: timemachine.M(100, "RUB")},
		{Date: date.MustParse("2024-02-01"), Close: timemachine.M(110, "RUB")},
		{Date: date.MustParse("2025-01-09"), Close: timemachine.M(140, "RUB")},
	}
	plan := timemachine.ContributionPlan{Every: timemachine.Quarterly, Amount: timemachine.M(1000, "RUB")}
	res, err := timemachine.ComputeReturn("SBER", date.MustParse("2024-01-02"), date.MustParse("2025-01-09"),
		timemachine.M(10000, "RUB"), plan, series)
	if err != nil {
		t.Fatalf("ComputeReturn() failed: %v", err)
	}
	return res
}

func TestRenderResult(t *testing.T) {
	res := computedResult(t)
	md := RenderResult(NewResult(res))

	wantFragments := []string{
		"# SBER: 2024-01-02 to 2025-01-09",
		"| Buy price",
		"| IRR",
		"| CAGR",
		"## Transactions",
		"| 2024-01-02 |",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(md, frag) {
			t.Errorf("rendered markdown missing %q:\n%s", frag, md)
		}
	}

	// One table row per ledger transaction.
	rows := strings.Count(md, "\n| 202")
	if rows != len(res.Transactions) {
		t.Errorf("rendered %d transaction rows, want %d:\n%s", rows, len(res.Transactions), md)
	}

	if strings.Contains(md, "error") {
		t.Errorf("rendered markdown contains a template error:\n%s", md)
	}
}

func TestRenderResult_naRates(t *testing.T) {
	series := timemachine.PriceSeries{
		{Date: date.MustParse("2024-01-02"), Close: timemachine.M(100, "RUB")},
		{Date: date.MustParse("2024-02-01"), Close: timemachine.M(110, "RUB")},
	}
	res, err := timemachine.ComputeReturn("SBER", date.MustParse("2024-01-02"), date.MustParse("2024-02-01"),
		timemachine.M(10000, "RUB"), timemachine.NoContributions, series)
	if err != nil {
		t.Fatalf("ComputeReturn() failed: %v", err)
	}
	md := RenderResult(NewResult(res))

	// Short horizon, no contributions: both rates are unavailable.
	if got := strings.Count(md, "n/a"); got != 2 {
		t.Errorf("want 2 n/a rates, got %d:\n%s", got, md)
	}
}
