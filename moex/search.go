package moex

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// Instrument is one row of the ISS securities directory, as returned by the
// autocomplete search.
type Instrument struct {
	SecID     string `json:"secid"`
	ShortName string `json:"shortname"`
	ISIN      string `json:"isin"`
	Board     string `json:"board"`
	IsTraded  bool   `json:"isTraded"`
}

// Search queries the ISS securities directory for instruments matching the
// query (ticker fragment, name or ISIN).
func Search(client *http.Client, query string) ([]Instrument, error) {
	addr := fmt.Sprintf("%s/iss/securities.json?iss.meta=off&q=%s", issURL(), url.QueryEscape(query))

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", query, err)
	}
	return normalizeSearch(jobj)
}

// normalizeSearch converts the ISS securities table into instruments.
func normalizeSearch(jobj any) ([]Instrument, error) {
	indexes := make(map[string]int)
	for _, name := range []string{"secid", "shortname", "isin", "primary_boardid", "is_traded"} {
		idx, err := columnIndex(jobj, "$.securities.columns", name)
		if err != nil {
			return nil, err
		}
		indexes[name] = idx
	}

	jrows, err := jsonpath.Get("$.securities.data", jobj)
	if err != nil {
		return nil, fmt.Errorf("no securities table: %w", err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		return nil, fmt.Errorf("securities data is not a table")
	}

	instruments := make([]Instrument, 0, len(rows))
	for _, jrow := range rows {
		row, ok := jrow.([]any)
		if !ok {
			return nil, fmt.Errorf("malformed securities row %v", jrow)
		}
		traded, _ := row[indexes["is_traded"]].(float64)
		instruments = append(instruments, Instrument{
			SecID:     str(row, indexes["secid"]),
			ShortName: str(row, indexes["shortname"]),
			ISIN:      str(row, indexes["isin"]),
			Board:     str(row, indexes["primary_boardid"]),
			IsTraded:  traded != 0,
		})
	}
	return instruments, nil
}

// str reads a string cell, tolerating the nulls ISS sprinkles over optional
// columns.
func str(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}
