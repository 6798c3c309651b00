package timemachine

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultXIRRGuess is the starting rate for the Newton iteration.
	DefaultXIRRGuess = 0.10

	xirrMaxIterations = 100
	xirrTolerance     = 1e-7

	// Actual/365 fixed day count, no leap-year adjustment.
	daysPerYear = 365.0
)

// ErrNonConvergent is returned when the XIRR iteration runs out of steps,
// hits a vanishing derivative, or produces a non-finite rate. A rate that
// falls out of a failed iteration is not trustworthy and is never surfaced.
var ErrNonConvergent = errors.New("internal rate of return did not converge")

// SolveXIRR computes the annualized money-weighted rate of return of an
// irregular cash-flow series by finding the root of its net present value
// with Newton's method. Time offsets are measured in years of 365 days from
// the first flow's date.
func SolveXIRR(flows []CashFlow, guess float64) (float64, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("need at least two cash flows, got %d", len(flows))
	}

	t0 := flows[0].Date
	years := make([]float64, len(flows))
	amounts := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(t0.DaysUntil(f.Date)) / daysPerYear
		amounts[i] = f.Amount.AsFloat()
	}

	rate := guess
	for i := 0; i < xirrMaxIterations; i++ {
		var npv, deriv float64
		for j := range amounts {
			npv += amounts[j] / math.Pow(1+rate, years[j])
			deriv += -years[j] * amounts[j] / math.Pow(1+rate, years[j]+1)
		}
		if math.Abs(deriv) < 1e-12 {
			return 0, fmt.Errorf("derivative vanished at rate %g: %w", rate, ErrNonConvergent)
		}
		next := rate - npv/deriv
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, ErrNonConvergent
		}
		if math.Abs(next-rate) < xirrTolerance {
			return next, nil
		}
		rate = next
	}
	return 0, ErrNonConvergent
}
