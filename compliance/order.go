// Package compliance enforces the Pattern Day Trading rule: accounts below
// the regulatory equity threshold may not complete more than a fixed number
// of day trades within a rolling trading-day window.
package compliance

import (
	"errors"
	"fmt"
	"time"
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Opposite returns the other side. A buy closes a sell and vice versa.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) valid() bool {
	return s == Buy || s == Sell
}

// ParseSide converts a string into a Side, accepting the canonical
// lowercase forms "buy" and "sell".
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	}
	return "", fmt.Errorf("parse side %q: %w", s, ErrInvalidOrder)
}

// Order is one submitted trade instruction. It is constructed fully at the
// boundary and never mutated by the engine.
type Order struct {
	ID          string
	AccountID   string
	Symbol      string
	Side        Side
	Quantity    int
	SubmittedAt time.Time
}

// Validate reports whether the order is well-formed. It is called by
// Evaluate before any state is touched, so a malformed order can never
// mutate an account.
func (o Order) Validate() error {
	switch {
	case o.ID == "":
		return fmt.Errorf("order missing id: %w", ErrInvalidOrder)
	case o.AccountID == "":
		return fmt.Errorf("order %s missing account id: %w", o.ID, ErrInvalidOrder)
	case o.Symbol == "":
		return fmt.Errorf("order %s missing symbol: %w", o.ID, ErrInvalidOrder)
	case !o.Side.valid():
		return fmt.Errorf("order %s has side %q: %w", o.ID, o.Side, ErrInvalidOrder)
	case o.Quantity <= 0:
		return fmt.Errorf("order %s has quantity %d: %w", o.ID, o.Quantity, ErrInvalidOrder)
	}
	return nil
}

// DayTrade records one detected round trip: an opening and a closing order
// on the same symbol, opposite sides, within the same trading day.
type DayTrade struct {
	Symbol       string
	OpenOrderID  string
	CloseOrderID string
	TradeDate    time.Time // midnight in the exchange timezone
	DetectedAt   time.Time
}

// Reason identifies why an order was blocked.
type Reason string

// ReasonPDTLimitExceeded marks an informational compliance block, not a
// system fault. The decision always carries the next eligible date.
const ReasonPDTLimitExceeded Reason = "PDT_LIMIT_EXCEEDED"

// Decision is the outcome of evaluating one order.
//
// A blocked decision is a normal, expected result: the caller should
// present a compliance message, not an error. DayTrade is non-nil only
// when an accepted order completed a round trip.
type Decision struct {
	Accepted     bool
	Reason       Reason
	NextEligible time.Time // zero unless blocked
	DayTrade     *DayTrade
}

var (
	// ErrInvalidOrder marks a malformed order (empty symbol, non-positive
	// quantity). Rejected before any state mutation.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidEquity marks a negative equity update.
	ErrInvalidEquity = errors.New("invalid equity")
)
