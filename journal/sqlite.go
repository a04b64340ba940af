package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/finlock/daytrade/compliance"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordDayTrade(accountID string, dt compliance.DayTrade) error {
	_, err := j.db.Exec(`
		INSERT INTO day_trades
		(account_id, symbol, open_order_id, close_order_id, trade_date, detected_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		accountID, dt.Symbol, dt.OpenOrderID, dt.CloseOrderID,
		dt.TradeDate.Format(time.RFC3339), dt.DetectedAt.Format(time.RFC3339),
	)
	return err
}

func (j *SQLiteJournal) RecordOpenOrder(o compliance.Order) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO open_orders
		(order_id, account_id, symbol, side, quantity, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.AccountID, o.Symbol, string(o.Side), o.Quantity,
		o.SubmittedAt.Format(time.RFC3339),
	)
	return err
}

func (j *SQLiteJournal) RemoveOpenOrder(orderID string) error {
	_, err := j.db.Exec(`DELETE FROM open_orders WHERE order_id = ?`, orderID)
	return err
}

func (j *SQLiteJournal) LoadDayTrades(accountID string, since time.Time) ([]compliance.DayTrade, error) {
	rows, err := j.db.Query(`
		SELECT symbol, open_order_id, close_order_id, trade_date, detected_at
		FROM day_trades
		WHERE account_id = ? AND trade_date >= ?
		ORDER BY detected_at`,
		accountID, since.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []compliance.DayTrade
	for rows.Next() {
		var dt compliance.DayTrade
		var tradeDate, detectedAt string
		if err := rows.Scan(&dt.Symbol, &dt.OpenOrderID, &dt.CloseOrderID, &tradeDate, &detectedAt); err != nil {
			return nil, err
		}
		if dt.TradeDate, err = time.Parse(time.RFC3339, tradeDate); err != nil {
			return nil, err
		}
		if dt.DetectedAt, err = time.Parse(time.RFC3339, detectedAt); err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) LoadOpenOrders(accountID string) ([]compliance.Order, error) {
	rows, err := j.db.Query(`
		SELECT order_id, account_id, symbol, side, quantity, submitted_at
		FROM open_orders
		WHERE account_id = ?
		ORDER BY submitted_at`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []compliance.Order
	for rows.Next() {
		var o compliance.Order
		var side, submitted string
		if err := rows.Scan(&o.ID, &o.AccountID, &o.Symbol, &side, &o.Quantity, &submitted); err != nil {
			return nil, err
		}
		if o.Side, err = compliance.ParseSide(side); err != nil {
			return nil, err
		}
		if o.SubmittedAt, err = time.Parse(time.RFC3339, submitted); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
