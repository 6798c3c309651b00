// Package moex retrieves daily price histories and instrument listings from
// the Moscow Exchange ISS API, and normalizes them into the canonical price
// series the engine consumes.
package moex

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/avoronov/timemachine"
	"github.com/avoronov/timemachine/date"
)

const issURLEnv = "MOEX_ISS_URL"

const defaultISSURL = "https://iss.moex.com"

var issURLFlag = flag.String("moex-iss-url", "", "Base URL of the MOEX ISS API.\n If missing it will read the environment variable \""+issURLEnv+"\", defaulting to "+defaultISSURL)

func issURL() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *issURLFlag == "" {
		*issURLFlag = os.Getenv(issURLEnv)
	}
	if *issURLFlag == "" {
		*issURLFlag = defaultISSURL
	}
	return *issURLFlag
}

// historyURL picks the ISS board for a ticker. The IMOEX index lives on the
// SNDX index board; everything else is treated as a TQBR share.
func historyURL(ticker string, from, till date.Date, start int) string {
	market, board := "shares", "TQBR"
	if ticker == "IMOEX" {
		market, board = "index", "SNDX"
	}
	return fmt.Sprintf("%s/iss/history/engines/stock/markets/%s/boards/%s/securities/%s.json?iss.meta=off&from=%s&till=%s&start=%d",
		issURL(), market, board, ticker, from, till, start)
}

// FetchHistory retrieves the daily closing prices for a ticker over [from,
// till], following the ISS cursor across pages (ISS serves at most 100 rows
// per page, so any multi-month window is paginated). The result satisfies the
// engine's series invariant: ascending, unique by date, closes > 0.
func FetchHistory(client *http.Client, ticker string, from, till date.Date) (timemachine.PriceSeries, error) {
	var series timemachine.PriceSeries
	start := 0
	for {
		var jobj any
		addr := historyURL(ticker, from, till, start)
		if err := jwget(client, addr, &jobj); err != nil {
			return nil, fmt.Errorf("cannot fetch history for %q: %w", ticker, err)
		}

		page, err := normalizeHistory(jobj)
		if err != nil {
			return nil, fmt.Errorf("cannot read history for %q: %w", ticker, err)
		}
		series = append(series, page...)

		index, total, pageSize, err := historyCursor(jobj)
		if err != nil {
			return nil, fmt.Errorf("cannot read history cursor for %q: %w", ticker, err)
		}
		start = index + pageSize
		if start >= total {
			break
		}
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid history for %q: %w", ticker, err)
	}
	return series, nil
}

// normalizeHistory converts one ISS history page into price samples. The ISS
// table shape is a columns array naming the fields and a data array of
// positional rows; only TRADEDATE and CLOSE are of interest. Rows with a null
// or zero close (ISS emits empty zeros on no-trade days) are dropped.
func normalizeHistory(jobj any) ([]timemachine.PriceSample, error) {
	dateIdx, err := columnIndex(jobj, "$.history.columns", "TRADEDATE")
	if err != nil {
		return nil, err
	}
	closeIdx, err := columnIndex(jobj, "$.history.columns", "CLOSE")
	if err != nil {
		return nil, err
	}

	jrows, err := jsonpath.Get("$.history.data", jobj)
	if err != nil {
		return nil, fmt.Errorf("no history table: %w", err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		return nil, fmt.Errorf("history data is not a table")
	}

	samples := make([]timemachine.PriceSample, 0, len(rows))
	for _, jrow := range rows {
		row, ok := jrow.([]any)
		if !ok || len(row) <= dateIdx || len(row) <= closeIdx {
			return nil, fmt.Errorf("malformed history row %v", jrow)
		}
		str, ok := row[dateIdx].(string)
		if !ok {
			return nil, fmt.Errorf("malformed trade date %v", row[dateIdx])
		}
		day, err := date.Parse(str)
		if err != nil {
			return nil, err
		}
		close, ok := row[closeIdx].(float64)
		if !ok || close <= 0 {
			// no trades that day
			continue
		}
		samples = append(samples, timemachine.PriceSample{Date: day, Close: timemachine.M(close, "RUB")})
	}
	return samples, nil
}

// historyCursor reads the ISS pagination cursor: a one-row table with INDEX,
// TOTAL and PAGESIZE columns.
func historyCursor(jobj any) (index, total, pageSize int, err error) {
	index, err = cursorValue(jobj, "INDEX")
	if err != nil {
		return 0, 0, 0, err
	}
	total, err = cursorValue(jobj, "TOTAL")
	if err != nil {
		return 0, 0, 0, err
	}
	pageSize, err = cursorValue(jobj, "PAGESIZE")
	if err != nil {
		return 0, 0, 0, err
	}
	return index, total, pageSize, nil
}

func cursorValue(jobj any, column string) (int, error) {
	idx, err := columnIndex(jobj, `$["history.cursor"].columns`, column)
	if err != nil {
		return 0, err
	}
	jval, err := jsonpath.Get(fmt.Sprintf(`$["history.cursor"].data[0][%d]`, idx), jobj)
	if err != nil {
		return 0, fmt.Errorf("no cursor value %s: %w", column, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("cursor value %s is not a number: %v", column, jval)
	}
	return int(val), nil
}

// columnIndex locates a named column in an ISS table header.
func columnIndex(jobj any, path, name string) (int, error) {
	jcols, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("no columns at %s: %w", path, err)
	}
	cols, ok := jcols.([]any)
	if !ok {
		return 0, fmt.Errorf("columns at %s are not a list", path)
	}
	for i, c := range cols {
		if s, ok := c.(string); ok && s == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found", name)
}
