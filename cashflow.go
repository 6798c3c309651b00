package timemachine

import "github.com/avoronov/timemachine/date"

// CashFlow is a dated signed amount from the investor's point of view:
// negative for purchases, positive for the final sale.
type CashFlow struct {
	Date   date.Date
	Amount Money
}

// ProjectCashFlows derives the signed cash-flow series consumed by the XIRR
// solver: one outflow per ledger transaction in ledger order, then exactly
// one inflow at realSell for the sale proceeds. A contribution that resolved
// to the sale date still precedes the sale flow.
func ProjectCashFlows(ledger Ledger, realSell date.Date, finalAmount Money) []CashFlow {
	flows := make([]CashFlow, 0, len(ledger)+1)
	for _, tx := range ledger {
		flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount.Neg()})
	}
	flows = append(flows, CashFlow{Date: realSell, Amount: finalAmount})
	return flows
}
