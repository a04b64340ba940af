// Package journal persists detected day trades and open orders so the
// compliance engine's rolling window survives process restarts. The
// engine itself is in-memory; without a replay on startup the window
// incorrectly resets.
package journal

import (
	"fmt"
	"time"

	"github.com/finlock/daytrade/compliance"
)

type Journal interface {
	// RecordDayTrade appends one detected round trip for the account.
	RecordDayTrade(accountID string, dt compliance.DayTrade) error

	// RecordOpenOrder stores an unmatched open order.
	RecordOpenOrder(o compliance.Order) error

	// RemoveOpenOrder drops an open order once it has been matched.
	RemoveOpenOrder(orderID string) error

	// LoadDayTrades returns the account's day trades with a trade date at
	// or after since, in detection order.
	LoadDayTrades(accountID string, since time.Time) ([]compliance.DayTrade, error)

	// LoadOpenOrders returns the account's unmatched open orders in
	// submission order.
	LoadOpenOrders(accountID string) ([]compliance.Order, error)

	Close() error
}

// Replay loads journaled state for one account into the engine. It is
// called once per account on startup, before the first Evaluate. since
// bounds how far back day trades are read; anything older than the
// rolling window cannot affect a decision.
func Replay(j Journal, eng *compliance.Engine, accountID string, equity float64, since time.Time) error {
	trades, err := j.LoadDayTrades(accountID, since)
	if err != nil {
		return fmt.Errorf("replay account %s: %w", accountID, err)
	}
	open, err := j.LoadOpenOrders(accountID)
	if err != nil {
		return fmt.Errorf("replay account %s: %w", accountID, err)
	}
	return eng.Restore(accountID, equity, trades, open)
}

// Record applies one decision to the journal: a detected day trade is
// appended and its matched opener removed, while a plain accepted order
// becomes a new open order.
func Record(j Journal, o compliance.Order, d compliance.Decision) error {
	if !d.Accepted {
		return nil
	}
	if d.DayTrade == nil {
		return j.RecordOpenOrder(o)
	}
	if err := j.RecordDayTrade(o.AccountID, *d.DayTrade); err != nil {
		return err
	}
	return j.RemoveOpenOrder(d.DayTrade.OpenOrderID)
}
