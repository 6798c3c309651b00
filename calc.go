package timemachine

import (
	"fmt"
	"math"

	"github.com/avoronov/timemachine/date"
)

// minCAGRYears is the shortest holding period over which annualizing the
// growth rate is meaningful. Below it CAGR is reported as nil.
const minCAGRYears = 0.5

// CalcResult is the engine's sole output. Rates that are mathematically
// undefined, or not computable for this input, are nil: the caller can always
// render profit, the ledger and the valuation even when IRR or CAGR are
// unavailable.
type CalcResult struct {
	Ticker        string           `json:"ticker"`
	BuyDate       date.Date        `json:"buyDate"`  // realized buy trading date
	SellDate      date.Date        `json:"sellDate"` // realized sell trading date
	BuyPrice      Money            `json:"buyPrice"`
	SellPrice     Money            `json:"sellPrice"`
	TotalInvested Money            `json:"totalInvested"`
	FinalAmount   Money            `json:"finalAmount"`
	Profit        Money            `json:"profit"`
	ProfitPercent *Percent         `json:"profitPercent"`
	IRR           *Percent         `json:"irr"`
	CAGR          *Percent         `json:"cagr"`
	Transactions  Ledger           `json:"transactions"`
	Valuation     []PortfolioPoint `json:"valuation"`
	History       PriceSeries      `json:"history"`
}

// ComputeReturn evaluates the outcome of investing initial at buyDate,
// optionally contributing per plan, and liquidating everything at sellDate,
// against the given closing-price history. Both dates are resolved to actual
// trading dates of the series first.
//
// Structural problems (empty history, missing price) abort with an error.
// Numeric edge cases (nothing invested, non-convergent IRR, holding period
// too short for CAGR) degrade to nil fields in an otherwise valid result.
func ComputeReturn(ticker string, buyDate, sellDate date.Date, initial Money, plan ContributionPlan, series PriceSeries) (*CalcResult, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrEmptySeries)
	}
	series = series.sorted()

	realBuy, err := series.Resolve(buyDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	realSell, err := series.Resolve(sellDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}

	buyPrice, ok := series.CloseOn(realBuy)
	if !ok {
		return nil, fmt.Errorf("%s: buy date %s: %w", ticker, realBuy, ErrNoPrice)
	}
	sellPrice, ok := series.CloseOn(realSell)
	if !ok {
		return nil, fmt.Errorf("%s: sell date %s: %w", ticker, realSell, ErrNoPrice)
	}

	ledger, err := BuildLedger(series, realBuy, realSell, initial, plan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}

	totalInvested := ledger.TotalInvested()
	finalAmount := sellPrice.Mul(ledger.TotalShares())
	profit := finalAmount.Sub(totalInvested)

	result := &CalcResult{
		Ticker:        ticker,
		BuyDate:       realBuy,
		SellDate:      realSell,
		BuyPrice:      buyPrice,
		SellPrice:     sellPrice,
		TotalInvested: totalInvested.Round(),
		FinalAmount:   finalAmount.Round(),
		Profit:        profit.Round(),
		Transactions:  ledger,
		Valuation:     TrackValuation(series, ledger),
		History:       series,
	}

	if totalInvested.IsPositive() {
		result.ProfitPercent = roundedPercent(profit.AsFloat() / totalInvested.AsFloat() * 100)
		result.CAGR = annualizedGrowth(totalInvested, finalAmount, realBuy, realSell)
		result.IRR = moneyWeightedReturn(ledger, realSell, finalAmount)
	}
	return result, nil
}

// annualizedGrowth computes CAGR as a percent, or nil when the holding
// period is too short to annualize.
func annualizedGrowth(invested, final Money, buy, sell date.Date) *Percent {
	years := float64(buy.DaysUntil(sell)) / daysPerYear
	if years <= minCAGRYears {
		return nil
	}
	growth := math.Pow(final.AsFloat()/invested.AsFloat(), 1/years) - 1
	return roundedPercent(growth * 100)
}

// moneyWeightedReturn computes XIRR as a percent. With a bare buy/sell pair
// (two cash flows, no contributions) it is nil and CAGR stands in; it is also
// nil when the solver fails to converge.
func moneyWeightedReturn(ledger Ledger, realSell date.Date, finalAmount Money) *Percent {
	flows := ProjectCashFlows(ledger, realSell, finalAmount)
	if len(flows) <= 2 {
		return nil
	}
	rate, err := SolveXIRR(flows, DefaultXIRRGuess)
	if err != nil {
		return nil
	}
	return roundedPercent(rate * 100)
}

// roundedPercent rounds a percentage to two decimals at the result boundary.
func roundedPercent(v float64) *Percent {
	p := Percent(math.Round(v*100) / 100)
	return &p
}
