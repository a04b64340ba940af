package compliance

import "time"

// Clock supplies the engine's notion of "now". Injecting it keeps the
// rolling-window arithmetic deterministic under test and replay.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a Clock pinned to a settable instant. Used by tests and by
// offline replays that walk through historical orders.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) { c.T = t }

// TradingCalendar reports which calendar days the market is open. All
// "day" arithmetic in the engine goes through this interface; the rolling
// window counts trading days, never raw calendar days.
type TradingCalendar interface {
	IsTradingDay(t time.Time) bool
}

// WeekdayCalendar treats Monday through Friday as trading days, minus an
// explicit holiday set, all interpreted in the exchange timezone.
type WeekdayCalendar struct {
	loc      *time.Location
	holidays map[string]struct{}
}

// NewWeekdayCalendar builds a calendar for the given exchange location.
// A nil location defaults to UTC.
func NewWeekdayCalendar(loc *time.Location, holidays []time.Time) *WeekdayCalendar {
	if loc == nil {
		loc = time.UTC
	}
	hs := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		hs[h.In(loc).Format("2006-01-02")] = struct{}{}
	}
	return &WeekdayCalendar{loc: loc, holidays: hs}
}

// Location returns the exchange timezone the calendar operates in.
func (c *WeekdayCalendar) Location() *time.Location { return c.loc }

func (c *WeekdayCalendar) IsTradingDay(t time.Time) bool {
	t = t.In(c.loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}
