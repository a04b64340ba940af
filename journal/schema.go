// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS day_trades (
	account_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	open_order_id TEXT NOT NULL,
	close_order_id TEXT NOT NULL,
	trade_date DATETIME NOT NULL,
	detected_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_day_trades_account_date ON day_trades(account_id, trade_date);

CREATE TABLE IF NOT EXISTS open_orders (
	order_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	submitted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_open_orders_account ON open_orders(account_id);
`
