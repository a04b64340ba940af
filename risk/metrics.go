// Package risk provides sizing and performance metrics for trade
// decisions. Like the indicator functions, every metric is total: edge
// cases map to the sentinel 0 rather than NaN, Inf, or an error.
package risk

import "math"

// Defaults for the Sharpe ratio inputs.
const (
	DefaultRiskFreeRate       = 0.02
	DefaultTradingDaysPerYear = 252
)

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SharpeRatio computes the annualized Sharpe ratio of a series of daily
// returns against an annual risk-free rate. It returns 0 for an empty
// series or when the excess returns have zero variance (the ratio is
// undefined without variance).
func SharpeRatio(returns []float64, riskFreeRate float64, tradingDaysPerYear int) float64 {
	if len(returns) == 0 || tradingDaysPerYear <= 0 {
		return 0
	}

	dailyRF := riskFreeRate / float64(tradingDaysPerYear)

	mean := 0.0
	for _, r := range returns {
		mean += r - dailyRF
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := (r - dailyRF) - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance) * math.Sqrt(float64(tradingDaysPerYear))
}

// PositionSize returns the number of shares such that losing the full
// entry-to-stop distance risks riskPct percent of account value, floored
// to a whole share. A zero distance means undefined risk per share and
// yields 0.
func PositionSize(accountValue, riskPct, entryPrice, stopLossPrice float64) int {
	perShare := abs(entryPrice - stopLossPrice)
	if perShare == 0 {
		return 0
	}
	units := math.Floor(accountValue * riskPct / 100 / perShare)
	if units < 0 {
		return 0
	}
	return int(units)
}

// RiskReward returns |takeProfit-entry| / |entry-stop|, or 0 when the
// risk distance is 0.
func RiskReward(entry, stopLoss, takeProfit float64) float64 {
	risk := abs(entry - stopLoss)
	if risk == 0 {
		return 0
	}
	return abs(takeProfit-entry) / risk
}
