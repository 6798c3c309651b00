package renderer

import (
	"github.com/avoronov/timemachine"
)

// Result is the view model for a computed investment outcome.
type Result struct {
	Ticker        string
	BuyDate       string
	SellDate      string
	BuyPrice      string
	SellPrice     string
	TotalInvested string
	FinalAmount   string
	Profit        string
	ProfitPercent string
	IRR           string
	CAGR          string
	Transactions  []ResultTransaction
	LastValue     string
	TradingDays   int
}

// ResultTransaction is one purchase row of the report.
type ResultTransaction struct {
	Date   string
	Price  string
	Amount string
	Shares string
}

// NewResult builds the view model from a computation result. Rates that were
// not computable render as "n/a".
func NewResult(c *timemachine.CalcResult) *Result {
	r := &Result{
		Ticker:        c.Ticker,
		BuyDate:       c.BuyDate.String(),
		SellDate:      c.SellDate.String(),
		BuyPrice:      c.BuyPrice.String(),
		SellPrice:     c.SellPrice.String(),
		TotalInvested: c.TotalInvested.String(),
		FinalAmount:   c.FinalAmount.String(),
		Profit:        c.Profit.SignedString(),
		ProfitPercent: rate(c.ProfitPercent),
		IRR:           rate(c.IRR),
		CAGR:          rate(c.CAGR),
		TradingDays:   len(c.History),
	}
	for _, tx := range c.Transactions {
		r.Transactions = append(r.Transactions, ResultTransaction{
			Date:   tx.Date.String(),
			Price:  tx.Price.String(),
			Amount: tx.Amount.String(),
			Shares: tx.Shares.String(),
		})
	}
	if n := len(c.Valuation); n > 0 {
		r.LastValue = c.Valuation[n-1].Value.String()
	}
	return r
}

func rate(p *timemachine.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.SignedString()
}

// RenderResult renders the Result struct to a markdown string.
func RenderResult(r *Result) string {
	partials := map[string]string{
		"result_summary":      "result_summary.md",
		"result_transactions": "result_transactions.md",
	}
	return renderTemplate("result", "result.md", partials, r)
}
