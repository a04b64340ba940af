package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		account       float64
		riskPct       float64
		entry, stop   float64
		want          int
	}{
		{"one dollar stop", 10000, 1, 50, 49, 100},
		{"zero risk per share", 10000, 1, 50, 50, 0},
		{"stop above entry", 10000, 1, 49, 50, 100},
		{"fractional floors down", 10000, 1, 50, 49.70, 333},
		{"tiny account", 100, 1, 50, 49, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PositionSize(tt.account, tt.riskPct, tt.entry, tt.stop))
		})
	}
}

func TestRiskReward(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RiskReward(100, 95, 110), 1e-9)
	assert.InDelta(t, 2.0, RiskReward(100, 105, 90), 1e-9) // short side
	assert.InDelta(t, 0.0, RiskReward(100, 100, 110), 1e-9)
}

func TestSharpeRatioSentinels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, SharpeRatio(nil, DefaultRiskFreeRate, DefaultTradingDaysPerYear))
	// Constant returns have zero variance; the ratio is undefined and
	// maps to 0 rather than Inf.
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.01, 0.01, 0.01}, DefaultRiskFreeRate, DefaultTradingDaysPerYear))
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.01}, 0.02, 0))
}

func TestSharpeRatioSign(t *testing.T) {
	t.Parallel()

	gains := []float64{0.01, 0.02, 0.015, 0.005, 0.012}
	losses := []float64{-0.01, -0.02, -0.015, -0.005, -0.012}

	up := SharpeRatio(gains, DefaultRiskFreeRate, DefaultTradingDaysPerYear)
	down := SharpeRatio(losses, DefaultRiskFreeRate, DefaultTradingDaysPerYear)

	assert.Greater(t, up, 0.0)
	assert.Less(t, down, 0.0)
	assert.False(t, math.IsNaN(up))
	assert.False(t, math.IsInf(up, 0))
}

func TestSharpeRatioAnnualization(t *testing.T) {
	t.Parallel()

	returns := []float64{0.01, -0.005, 0.02, 0.0, 0.007, -0.012, 0.004}

	// With a zero risk-free rate the ratio is mean/sd * sqrt(days).
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	want := mean / math.Sqrt(variance) * math.Sqrt(252)

	assert.InDelta(t, want, SharpeRatio(returns, 0, 252), 1e-9)
}
