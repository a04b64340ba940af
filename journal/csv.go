// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/finlock/daytrade/compliance"
)

// CSVJournal is an append-only day-trade log. It persists day trades
// only: open-order state does not survive restarts under this backend,
// so positions opened before a crash will not pair the next day. Use the
// SQLite journal when that matters.
type CSVJournal struct {
	path string
	w    *csv.Writer
	f    *os.File
}

var csvHeader = []string{"account_id", "symbol", "open_order_id", "close_order_id", "trade_date", "detected_at"}

// NewCSV opens (or creates) an append-mode day-trade log at path.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVJournal{path: path, w: w, f: f}, nil
}

func (j *CSVJournal) RecordDayTrade(accountID string, dt compliance.DayTrade) error {
	err := j.w.Write([]string{
		accountID,
		dt.Symbol,
		dt.OpenOrderID,
		dt.CloseOrderID,
		dt.TradeDate.Format(time.RFC3339),
		dt.DetectedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

// RecordOpenOrder is a no-op: the CSV backend does not track open orders.
func (j *CSVJournal) RecordOpenOrder(o compliance.Order) error { return nil }

// RemoveOpenOrder is a no-op: the CSV backend does not track open orders.
func (j *CSVJournal) RemoveOpenOrder(orderID string) error { return nil }

func (j *CSVJournal) LoadDayTrades(accountID string, since time.Time) ([]compliance.DayTrade, error) {
	f, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var out []compliance.DayTrade
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("day-trade log %s: row %d has %d fields, want %d",
				j.path, i+1, len(row), len(csvHeader))
		}
		if row[0] != accountID {
			continue
		}

		dt := compliance.DayTrade{
			Symbol:       row[1],
			OpenOrderID:  row[2],
			CloseOrderID: row[3],
		}
		if dt.TradeDate, err = time.Parse(time.RFC3339, row[4]); err != nil {
			return nil, fmt.Errorf("day-trade log %s: row %d: %w", j.path, i+1, err)
		}
		if dt.DetectedAt, err = time.Parse(time.RFC3339, row[5]); err != nil {
			return nil, fmt.Errorf("day-trade log %s: row %d: %w", j.path, i+1, err)
		}
		if dt.TradeDate.Before(since) {
			continue
		}
		out = append(out, dt)
	}
	return out, nil
}

// LoadOpenOrders always returns nothing; see the type comment.
func (j *CSVJournal) LoadOpenOrders(accountID string) ([]compliance.Order, error) {
	return nil, nil
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}
