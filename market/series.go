// Package market holds the price-series model consumed by the indicator
// and risk packages. The engine does not own this data; it is pure input
// supplied by a market-data collaborator.
package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Sample is one observation of a symbol's price. Volume, Bid, and Ask are
// optional; a bare close price is enough for every indicator.
type Sample struct {
	Time   time.Time
	Price  float64
	Volume float64
	Bid    float64
	Ask    float64
}

// Series is an ordered sequence of samples, oldest first.
type Series []Sample

// Closes extracts the close prices as a plain float64 slice for the
// indicator functions.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, sm := range s {
		out[i] = sm.Price
	}
	return out
}

// Returns computes period-over-period fractional returns, one element
// shorter than the series. A zero prior price yields a 0 return for that
// step rather than a division by zero.
func (s Series) Returns() []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Price
		if prev == 0 {
			continue
		}
		out[i-1] = (s[i].Price - prev) / prev
	}
	return out
}

// LoadCSV reads a series from a CSV file with columns
//
//	time,price[,volume[,bid,ask]]
//
// Time is RFC3339 and may be empty. A header row is skipped when the
// price column does not parse as a number.
func LoadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load series %s: %w", path, err)
	}

	var out Series
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("load series %s: row %d has %d columns, want at least 2", path, i+1, len(row))
		}
		price, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("load series %s: row %d: bad price %q", path, i+1, row[1])
		}

		sm := Sample{Price: price}
		if row[0] != "" {
			t, err := time.Parse(time.RFC3339, row[0])
			if err != nil {
				return nil, fmt.Errorf("load series %s: row %d: bad time %q", path, i+1, row[0])
			}
			sm.Time = t
		}
		if len(row) > 2 && row[2] != "" {
			if sm.Volume, err = strconv.ParseFloat(row[2], 64); err != nil {
				return nil, fmt.Errorf("load series %s: row %d: bad volume %q", path, i+1, row[2])
			}
		}
		if len(row) > 4 {
			if sm.Bid, err = strconv.ParseFloat(row[3], 64); err != nil {
				return nil, fmt.Errorf("load series %s: row %d: bad bid %q", path, i+1, row[3])
			}
			if sm.Ask, err = strconv.ParseFloat(row[4], 64); err != nil {
				return nil, fmt.Errorf("load series %s: row %d: bad ask %q", path, i+1, row[4])
			}
		}
		out = append(out, sm)
	}
	return out, nil
}
