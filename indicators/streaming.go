package indicators

import "fmt"

// SimpleMA is a streaming Simple Moving Average indicator.
type SimpleMA struct {
	period int
	window []float64
}

// NewMA creates a streaming Simple Moving Average with the given period.
func NewMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("MA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.window = m.window[:0]
}

func (m *SimpleMA) Update(close float64) {
	m.window = append(m.window, close)
	// Keep only the last 'period' samples
	if len(m.window) > m.period {
		m.window = m.window[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.window) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, v := range m.window {
		sum += v
	}
	return sum / float64(len(m.window))
}

// ExponentialMA is a streaming Exponential Moving Average indicator.
type ExponentialMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates a streaming Exponential Moving Average with the given period.
func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return e.period
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *ExponentialMA) Update(close float64) {
	if e.count < e.period {
		// During warmup, accumulate sum for the initial SMA seed
		e.warmupSum += close
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = (close-e.ema)*e.multiplier + e.ema
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= e.period
}

func (e *ExponentialMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// WilderRSI is a streaming Relative Strength Index using Wilder smoothing.
// It matches the batch RSI function sample for sample, including the
// neutral sentinel while warming up.
type WilderRSI struct {
	period   int
	prev     float64
	havePrev bool
	avgGain  float64
	avgLoss  float64
	// deltas consumed; ready after 'period' of them
	count int
}

// NewRSI creates a streaming RSI with the given period.
func NewRSI(period int) *WilderRSI {
	return &WilderRSI{period: period}
}

func (r *WilderRSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *WilderRSI) Warmup() int {
	return r.period + 1
}

func (r *WilderRSI) Reset() {
	r.prev = 0
	r.havePrev = false
	r.avgGain = 0
	r.avgLoss = 0
	r.count = 0
}

func (r *WilderRSI) Update(close float64) {
	if !r.havePrev {
		r.prev = close
		r.havePrev = true
		return
	}

	d := close - r.prev
	r.prev = close
	gain, loss := 0.0, 0.0
	if d > 0 {
		gain = d
	} else {
		loss = -d
	}

	if r.count < r.period {
		// Accumulate the seed averages over the first 'period' deltas.
		r.avgGain += gain
		r.avgLoss += loss
		r.count++
		if r.count == r.period {
			r.avgGain /= float64(r.period)
			r.avgLoss /= float64(r.period)
		}
		return
	}

	r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
	r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
	r.count++
}

func (r *WilderRSI) Ready() bool {
	return r.count >= r.period
}

// Value returns the current RSI, or the neutral sentinel during warmup.
func (r *WilderRSI) Value() float64 {
	if !r.Ready() {
		return RSINeutral
	}
	if r.avgLoss == 0 {
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}
