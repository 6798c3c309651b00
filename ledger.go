package timemachine

import (
	"fmt"

	"github.com/avoronov/timemachine/date"
)

// Transaction is a single purchase: an amount invested at that day's closing
// price, acquiring amount/price shares. Immutable once created.
type Transaction struct {
	Date   date.Date `json:"date"`
	Price  Money     `json:"price"`
	Amount Money     `json:"amount"`
	Shares Quantity  `json:"shares"`
}

// NewTransaction creates a purchase of amount at the given unit price.
// The price must be strictly positive; the series invariant guarantees it.
func NewTransaction(day date.Date, price, amount Money) Transaction {
	return Transaction{
		Date:   day,
		Price:  price,
		Amount: amount,
		Shares: amount.DivPrice(price),
	}
}

// Ledger is the ordered sequence of purchases: the initial buy first, then
// scheduled contributions in chronological order. Two contributions may share
// a trading date when their target dates resolve to the same trading day.
type Ledger []Transaction

// TotalInvested sums the invested amounts of all transactions.
func (l Ledger) TotalInvested() Money {
	var total Money
	for _, tx := range l {
		total = total.Add(tx.Amount)
	}
	return total
}

// TotalShares sums the shares acquired by all transactions.
func (l Ledger) TotalShares() Quantity {
	var total Quantity
	for _, tx := range l {
		total = total.Add(tx.Shares)
	}
	return total
}

// BuildLedger combines the initial purchase at realBuy with the plan's
// contributions between realBuy and realSell, each resolved to an actual
// trading date of the series and priced at that day's close.
func BuildLedger(series PriceSeries, realBuy, realSell date.Date, initial Money, plan ContributionPlan) (Ledger, error) {
	buyPrice, ok := series.CloseOn(realBuy)
	if !ok {
		return nil, fmt.Errorf("buy date %s: %w", realBuy, ErrNoPrice)
	}
	ledger := Ledger{NewTransaction(realBuy, buyPrice, initial)}

	for _, target := range plan.Schedule(realBuy, realSell) {
		day, err := series.Resolve(target)
		if err != nil {
			return nil, fmt.Errorf("contribution %s: %w", target, err)
		}
		price, ok := series.CloseOn(day)
		if !ok {
			// Resolve guarantees a sample at day; skip rather than abort
			// if that ever stops holding.
			continue
		}
		ledger = append(ledger, NewTransaction(day, price, plan.Amount))
	}
	return ledger, nil
}
