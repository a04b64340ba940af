package compliance

import (
	"fmt"
	"sync"
	"time"
)

// Config carries the regulatory parameters. They are configurable at
// construction rather than hard-coded so jurisdiction overrides and tests
// can tighten or loosen them.
type Config struct {
	EquityThreshold float64 // equity at or above this exempts the account
	DayTradeLimit   int     // max day trades inside the window
	WindowDays      int     // rolling window length in trading days
	Location        *time.Location
}

// DefaultConfig returns the FINRA defaults: $25,000 threshold, 3 day
// trades per 5 trading days, dates in the New York trading timezone.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		EquityThreshold: 25000,
		DayTradeLimit:   3,
		WindowDays:      5,
		Location:        loc,
	}
}

// Engine tracks completed day trades per account and gates orders that
// would exceed the PDT limit. It performs no I/O; durable storage is the
// caller's concern and is replayed back in through Restore on startup.
type Engine struct {
	cfg   Config
	cal   TradingCalendar
	clock Clock

	mu       sync.RWMutex
	accounts map[string]*accountState
}

// accountState is the per-account compliance record. Its mutex serializes
// Evaluate and SetEquity for one account; different accounts never contend.
type accountState struct {
	mu         sync.Mutex
	equity     float64
	dayTrades  []DayTrade // detection order
	openOrders []Order    // unmatched orders, current trading day only
}

// NewEngine builds an engine with the given parameters. Zero-value config
// fields fall back to DefaultConfig; a nil clock uses the system clock.
func NewEngine(cfg Config, cal TradingCalendar, clock Clock) *Engine {
	def := DefaultConfig()
	if cfg.EquityThreshold == 0 {
		cfg.EquityThreshold = def.EquityThreshold
	}
	if cfg.DayTradeLimit == 0 {
		cfg.DayTradeLimit = def.DayTradeLimit
	}
	if cfg.WindowDays == 0 {
		cfg.WindowDays = def.WindowDays
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cal == nil {
		cal = NewWeekdayCalendar(cfg.Location, nil)
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		cfg:      cfg,
		cal:      cal,
		clock:    clock,
		accounts: make(map[string]*accountState),
	}
}

// SetEquity stores the account's current equity for future evaluations.
// Equity is pushed in by the account collaborator; the engine never
// derives it. Negative values fail with ErrInvalidEquity.
func (e *Engine) SetEquity(accountID string, value float64) error {
	if value < 0 {
		return fmt.Errorf("set equity for account %s: %.2f: %w", accountID, value, ErrInvalidEquity)
	}
	acct := e.account(accountID)
	acct.mu.Lock()
	defer acct.mu.Unlock()
	acct.equity = value
	return nil
}

// CanDayTrade reports whether the account may complete another day trade
// right now: true when equity meets the threshold or the windowed count is
// under the limit.
func (e *Engine) CanDayTrade(accountID string) bool {
	acct := e.lookup(accountID)
	if acct == nil {
		return true
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return e.canDayTradeLocked(acct, e.today())
}

// Evaluate decides one order. Accepted orders mutate the account state:
// a new open position is logged, or, when the order closes a same-day
// position on the same symbol, a DayTrade is recorded against the oldest
// unmatched opposite-side open order (FIFO). An order that would complete
// a day trade past the limit is Blocked with the next eligible date.
//
// Malformed orders fail with ErrInvalidOrder and touch nothing.
func (e *Engine) Evaluate(o Order) (Decision, error) {
	if err := o.Validate(); err != nil {
		return Decision{}, err
	}

	acct := e.account(o.AccountID)
	acct.mu.Lock()
	defer acct.mu.Unlock()

	today := e.today()
	e.pruneLocked(acct, today)

	match := -1
	for i, open := range acct.openOrders {
		if open.Symbol == o.Symbol && open.Side == o.Side.Opposite() {
			match = i
			break
		}
	}

	if match < 0 {
		// No round trip; log a new open position.
		acct.openOrders = append(acct.openOrders, o)
		return Decision{Accepted: true}, nil
	}

	if !e.canDayTradeLocked(acct, today) {
		next, _ := e.nextEligibleLocked(acct, today)
		return Decision{
			Accepted:     false,
			Reason:       ReasonPDTLimitExceeded,
			NextEligible: next,
		}, nil
	}

	open := acct.openOrders[match]
	acct.openOrders = append(acct.openOrders[:match], acct.openOrders[match+1:]...)

	dt := DayTrade{
		Symbol:       o.Symbol,
		OpenOrderID:  open.ID,
		CloseOrderID: o.ID,
		TradeDate:    today,
		DetectedAt:   e.clock.Now(),
	}
	acct.dayTrades = append(acct.dayTrades, dt)

	return Decision{Accepted: true, DayTrade: &dt}, nil
}

// DayTradeCount returns the number of day trades whose trade date falls in
// the trailing window ending today. The count is recomputed from the log
// on every call; entries strictly older than the window are pruned as a
// side effect.
func (e *Engine) DayTradeCount(accountID string) int {
	acct := e.lookup(accountID)
	if acct == nil {
		return 0
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	today := e.today()
	e.pruneLocked(acct, today)
	return e.countLocked(acct, today)
}

// RemainingDayTrades returns how many more day trades the account may
// complete in the current window. The second value is true when the
// account is unlimited because equity meets the threshold.
func (e *Engine) RemainingDayTrades(accountID string) (int, bool) {
	acct := e.lookup(accountID)
	if acct == nil {
		return e.cfg.DayTradeLimit, false
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if acct.equity >= e.cfg.EquityThreshold {
		return 0, true
	}
	n := e.cfg.DayTradeLimit - e.countLocked(acct, e.today())
	if n < 0 {
		n = 0
	}
	return n, false
}

// NextEligibleDate returns the trading day on which the account becomes
// eligible again. The second value is false when the account is already
// eligible.
func (e *Engine) NextEligibleDate(accountID string) (time.Time, bool) {
	acct := e.lookup(accountID)
	if acct == nil {
		return time.Time{}, false
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return e.nextEligibleLocked(acct, e.today())
}

// DayTrades returns a snapshot of the account's recorded day trades in
// detection order, including entries that have aged out of the window but
// not yet been pruned.
func (e *Engine) DayTrades(accountID string) []DayTrade {
	acct := e.lookup(accountID)
	if acct == nil {
		return nil
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	out := make([]DayTrade, len(acct.dayTrades))
	copy(out, acct.dayTrades)
	return out
}

// OpenOrders returns a snapshot of the account's unmatched open orders for
// the current trading day.
func (e *Engine) OpenOrders(accountID string) []Order {
	acct := e.lookup(accountID)
	if acct == nil {
		return nil
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	e.pruneLocked(acct, e.today())
	out := make([]Order, len(acct.openOrders))
	copy(out, acct.openOrders)
	return out
}

// Restore loads previously journaled state for an account. The engine's
// model is in-memory; without a replay on startup the rolling window
// resets, so the persistence collaborator calls this before the first
// Evaluate.
func (e *Engine) Restore(accountID string, equity float64, dayTrades []DayTrade, openOrders []Order) error {
	if equity < 0 {
		return fmt.Errorf("restore account %s: equity %.2f: %w", accountID, equity, ErrInvalidEquity)
	}
	acct := e.account(accountID)
	acct.mu.Lock()
	defer acct.mu.Unlock()
	acct.equity = equity
	acct.dayTrades = append([]DayTrade(nil), dayTrades...)
	acct.openOrders = append([]Order(nil), openOrders...)
	return nil
}

// account returns the state for accountID, creating it on first use.
func (e *Engine) account(accountID string) *accountState {
	e.mu.RLock()
	acct := e.accounts[accountID]
	e.mu.RUnlock()
	if acct != nil {
		return acct
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if acct = e.accounts[accountID]; acct == nil {
		acct = &accountState{}
		e.accounts[accountID] = acct
	}
	return acct
}

// lookup returns the state for accountID or nil if the engine has never
// seen it. Reads on unknown accounts answer from defaults without
// allocating state.
func (e *Engine) lookup(accountID string) *accountState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.accounts[accountID]
}

func (e *Engine) canDayTradeLocked(acct *accountState, today time.Time) bool {
	if acct.equity >= e.cfg.EquityThreshold {
		return true
	}
	return e.countLocked(acct, today) < e.cfg.DayTradeLimit
}

func (e *Engine) countLocked(acct *accountState, today time.Time) int {
	start := e.windowStart(today)
	n := 0
	for _, dt := range acct.dayTrades {
		if !dt.TradeDate.Before(start) && !dt.TradeDate.After(today) {
			n++
		}
	}
	return n
}

func (e *Engine) nextEligibleLocked(acct *accountState, today time.Time) (time.Time, bool) {
	if e.canDayTradeLocked(acct, today) {
		return time.Time{}, false
	}
	start := e.windowStart(today)
	for _, dt := range acct.dayTrades {
		if !dt.TradeDate.Before(start) {
			// Oldest windowed trade; it ages out WindowDays trading days
			// after its trade date.
			return e.addTradingDays(dt.TradeDate, e.cfg.WindowDays), true
		}
	}
	return time.Time{}, false
}

// pruneLocked drops open orders from prior trading days (a position opened
// before a non-bridging day cannot pair with today's order) and day trades
// strictly older than the window.
func (e *Engine) pruneLocked(acct *accountState, today time.Time) {
	open := acct.openOrders[:0]
	for _, o := range acct.openOrders {
		if e.tradeDate(o.SubmittedAt).Equal(today) {
			open = append(open, o)
		}
	}
	acct.openOrders = open

	start := e.windowStart(today)
	trades := acct.dayTrades[:0]
	for _, dt := range acct.dayTrades {
		if !dt.TradeDate.Before(start) {
			trades = append(trades, dt)
		}
	}
	acct.dayTrades = trades
}

func (e *Engine) today() time.Time {
	return e.tradeDate(e.clock.Now())
}

// tradeDate truncates t to midnight in the exchange timezone.
func (e *Engine) tradeDate(t time.Time) time.Time {
	t = t.In(e.cfg.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.cfg.Location)
}

// windowStart returns the oldest trading day inside the trailing window
// ending today (today inclusive when it is a trading day). The scan is
// bounded so a degenerate calendar cannot spin forever.
func (e *Engine) windowStart(today time.Time) time.Time {
	d := today
	counted := 0
	for scanned := 0; scanned < 366+e.cfg.WindowDays; scanned++ {
		if e.cal.IsTradingDay(d) {
			counted++
			if counted == e.cfg.WindowDays {
				return d
			}
		}
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// addTradingDays returns the date n trading days after d.
func (e *Engine) addTradingDays(d time.Time, n int) time.Time {
	counted := 0
	for scanned := 0; counted < n && scanned < 366+n; scanned++ {
		d = d.AddDate(0, 0, 1)
		if e.cal.IsTradingDay(d) {
			counted++
		}
	}
	return d
}
