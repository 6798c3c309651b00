package timemachine

import (
	"math"
	"testing"

	"github.com/avoronov/timemachine/date"
)

func flow(day string, amount float64) CashFlow {
	return CashFlow{Date: date.MustParse(day), Amount: rub(amount)}
}

// npvAt re-evaluates the net present value at a rate, Actual/365 from the
// first flow, to check the solver actually found a root.
func npvAt(flows []CashFlow, rate float64) float64 {
	t0 := flows[0].Date
	var npv float64
	for _, f := range flows {
		years := float64(t0.DaysUntil(f.Date)) / daysPerYear
		npv += f.Amount.AsFloat() / math.Pow(1+rate, years)
	}
	return npv
}

func TestSolveXIRR_oneYearGain(t *testing.T) {
	// 10000 in, 11000 out exactly 365 days later: the rate is 10% by construction.
	flows := []CashFlow{
		flow("2024-01-02", -10000),
		flow("2025-01-01", 11000),
	}
	rate, err := SolveXIRR(flows, DefaultXIRRGuess)
	if err != nil {
		t.Fatalf("SolveXIRR() failed: %v", err)
	}
	if math.Abs(rate-0.10) > 1e-6 {
		t.Errorf("rate = %v, want 0.10", rate)
	}
}

func TestSolveXIRR_withContribution(t *testing.T) {
	flows := []CashFlow{
		flow("2024-01-02", -1000),
		flow("2024-07-03", -1000),
		flow("2025-01-01", 2200),
	}
	rate, err := SolveXIRR(flows, DefaultXIRRGuess)
	if err != nil {
		t.Fatalf("SolveXIRR() failed: %v", err)
	}
	if rate < 0 || rate > 1 {
		t.Fatalf("rate = %v, outside plausible range", rate)
	}
	if npv := npvAt(flows, rate); math.Abs(npv) > 1e-4 {
		t.Errorf("NPV at solved rate = %v, want ~0", npv)
	}
}

func TestSolveXIRR_loss(t *testing.T) {
	flows := []CashFlow{
		flow("2024-01-02", -10000),
		flow("2024-07-03", -1000),
		flow("2025-01-01", 9000),
	}
	rate, err := SolveXIRR(flows, DefaultXIRRGuess)
	if err != nil {
		t.Fatalf("SolveXIRR() failed: %v", err)
	}
	if rate >= 0 {
		t.Errorf("rate = %v, want negative for a losing investment", rate)
	}
	if npv := npvAt(flows, rate); math.Abs(npv) > 1e-4 {
		t.Errorf("NPV at solved rate = %v, want ~0", npv)
	}
}

func TestSolveXIRR_noRoot(t *testing.T) {
	// All-outflow series has no root: the failure must be reported, never a
	// junk rate.
	flows := []CashFlow{
		flow("2024-01-02", -100),
		flow("2025-01-01", -100),
	}
	if _, err := SolveXIRR(flows, DefaultXIRRGuess); err == nil {
		t.Error("SolveXIRR on rootless flows should fail")
	}
}

func TestSolveXIRR_tooFewFlows(t *testing.T) {
	if _, err := SolveXIRR([]CashFlow{flow("2024-01-02", -100)}, DefaultXIRRGuess); err == nil {
		t.Error("SolveXIRR with one flow should fail")
	}
}

func TestProjectCashFlows(t *testing.T) {
	s := monthlyCloses()
	buy := date.MustParse("2024-01-02")
	sell := date.MustParse("2025-01-09")
	plan := ContributionPlan{Every: Quarterly, Amount: rub(2000)}

	ledger, err := BuildLedger(s, buy, sell, rub(10000), plan)
	if err != nil {
		t.Fatalf("BuildLedger() failed: %v", err)
	}
	flows := ProjectCashFlows(ledger, sell, rub(25000))

	if len(flows) != len(ledger)+1 {
		t.Fatalf("flows = %d, want %d", len(flows), len(ledger)+1)
	}
	for i, tx := range ledger {
		if !flows[i].Amount.Equal(tx.Amount.Neg()) {
			t.Errorf("flow %d = %s, want %s", i, flows[i].Amount, tx.Amount.Neg())
		}
		if flows[i].Date != tx.Date {
			t.Errorf("flow %d date = %s, want %s", i, flows[i].Date, tx.Date)
		}
	}
	last := flows[len(flows)-1]
	if !last.Amount.Equal(rub(25000)) || last.Date != sell {
		t.Errorf("sale flow = %s on %s, want 25000 on %s", last.Amount, last.Date, sell)
	}
}
