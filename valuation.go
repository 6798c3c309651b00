package timemachine

import "github.com/avoronov/timemachine/date"

// PortfolioPoint is the portfolio's market value on one trading day:
// shares held as of that day times the day's close.
type PortfolioPoint struct {
	Date  date.Date `json:"date"`
	Value Money     `json:"value"`
}

// TrackValuation folds over the price series carrying a running share count,
// emitting one point per sample. Shares bought on a sample's date count
// toward that day's value; several transactions may land on the same day.
// The running count only ever grows, so the share component is a
// non-decreasing step function under the price fluctuation.
func TrackValuation(series PriceSeries, ledger Ledger) []PortfolioPoint {
	sorted := series.sorted()
	points := make([]PortfolioPoint, 0, len(sorted))
	var shares Quantity
	for _, sample := range sorted {
		for _, tx := range ledger {
			if tx.Date == sample.Date {
				shares = shares.Add(tx.Shares)
			}
		}
		points = append(points, PortfolioPoint{
			Date:  sample.Date,
			Value: sample.Close.Mul(shares),
		})
	}
	return points
}
