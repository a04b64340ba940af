// Package indicators provides technical analysis indicators for trading.
//
// Batch functions operate on an ordered series of close prices and are
// total: insufficient data yields an empty sequence or a documented
// sentinel value, never an error. Callers that must distinguish "not
// enough data" from a computed neutral value check len(series) themselves.
package indicators

// Default periods, matching the common charting conventions.
const (
	DefaultRSIPeriod       = 14
	DefaultBollingerPeriod = 20
	DefaultBollingerMult   = 2.0
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
)

// RSINeutral is returned by RSI when the series is too short to compute a
// value. It is a sentinel, not an error: signal code runs routinely during
// warm-up before full history is available.
const RSINeutral = 50.0

// Indicator computes a single streaming value from close prices.
// It is deterministic and safe to use in live, replay, and backtests.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next close price and updates internal state.
	Update(close float64)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers should always
	// check Ready().
	Value() float64
}
