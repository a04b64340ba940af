package indicators

import "math"

// SMA calculates the Simple Moving Average over each period-wide trailing
// window. The result has max(0, len(series)-period+1) elements; a period
// longer than the series yields an empty sequence.
func SMA(series []float64, period int) []float64 {
	if period <= 0 || len(series) < period {
		return nil
	}

	out := make([]float64, 0, len(series)-period+1)
	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= period {
			sum -= series[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}

// EMA calculates the Exponential Moving Average. The first value is the
// SMA of the first period samples; subsequent values follow
//
//	ema = (close - prev) * 2/(period+1) + prev
//
// A series shorter than period yields an empty sequence.
func EMA(series []float64, period int) []float64 {
	if period <= 0 || len(series) < period {
		return nil
	}

	multiplier := 2.0 / float64(period+1)

	// Seed with SMA of the first period samples.
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += series[i]
	}
	ema := sum / float64(period)

	out := make([]float64, 0, len(series)-period+1)
	out = append(out, ema)
	for i := period; i < len(series); i++ {
		ema = (series[i]-ema)*multiplier + ema
		out = append(out, ema)
	}
	return out
}

// RSI computes Wilder's Relative Strength Index over the whole series,
// scaled 0-100. A series shorter than period+1 returns RSINeutral. When
// the average loss is exactly zero the result is 100 (no downside) rather
// than a division by zero.
func RSI(series []float64, period int) float64 {
	if period <= 0 || len(series) < period+1 {
		return RSINeutral
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing over the remainder.
	for i := period + 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// Bands holds Bollinger band sequences aligned to the same index range as
// SMA(series, period).
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes Bollinger Bands: middle is the SMA, upper and lower
// are middle +/- mult standard deviations of each trailing window.
// Standard deviation is population (divide by N).
func Bollinger(series []float64, period int, mult float64) Bands {
	middle := SMA(series, period)
	if len(middle) == 0 {
		return Bands{}
	}

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i, m := range middle {
		window := series[i : i+period]
		sumSq := 0.0
		for _, v := range window {
			d := v - m
			sumSq += d * d
		}
		sd := math.Sqrt(sumSq / float64(period))
		upper[i] = m + mult*sd
		lower[i] = m - mult*sd
	}
	return Bands{Upper: upper, Middle: middle, Lower: lower}
}

// MACDResult holds the MACD line, its signal line, and the histogram.
// The three sequences are parallel: each is trimmed to the length the
// shortest contributing sequence allows, aligned to the final samples of
// the input. No placeholder padding.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the Moving Average Convergence Divergence:
// macd = EMA(fast) - EMA(slow) aligned by input index, signal = EMA of the
// macd line, histogram = macd - signal.
func MACD(series []float64, fast, slow, signal int) MACDResult {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return MACDResult{}
	}

	emaFast := EMA(series, fast)
	emaSlow := EMA(series, slow)
	if len(emaSlow) == 0 {
		return MACDResult{}
	}

	// emaFast[i] sits at series index fast-1+i; align both at slow-1.
	offset := slow - fast
	line := make([]float64, len(emaSlow))
	for i := range emaSlow {
		line[i] = emaFast[i+offset] - emaSlow[i]
	}

	sig := EMA(line, signal)
	if len(sig) == 0 {
		return MACDResult{}
	}

	line = line[len(line)-len(sig):]
	hist := make([]float64, len(sig))
	for i := range sig {
		hist[i] = line[i] - sig[i]
	}
	return MACDResult{MACD: line, Signal: sig, Histogram: hist}
}
