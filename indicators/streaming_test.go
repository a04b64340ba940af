package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleMAStreaming(t *testing.T) {
	closes := []float64{102, 105, 106, 108, 110}

	t.Run("basic functionality", func(t *testing.T) {
		ma := NewMA(3)
		assert.Equal(t, "MA(3)", ma.Name())
		assert.Equal(t, 3, ma.Warmup())
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())

		ma.Update(closes[0])
		assert.False(t, ma.Ready())
		ma.Update(closes[1])
		assert.False(t, ma.Ready())

		ma.Update(closes[2])
		assert.True(t, ma.Ready())
		assert.InDelta(t, (102.0+105.0+106.0)/3.0, ma.Value(), 0.001)

		ma.Update(closes[3])
		assert.InDelta(t, (105.0+106.0+108.0)/3.0, ma.Value(), 0.001)
	})

	t.Run("reset", func(t *testing.T) {
		ma := NewMA(2)
		ma.Update(closes[0])
		ma.Update(closes[1])
		assert.True(t, ma.Ready())

		ma.Reset()
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())
	})

	t.Run("matches batch calculation", func(t *testing.T) {
		ma := NewMA(3)
		for _, c := range closes {
			ma.Update(c)
		}
		batch := SMA(closes, 3)
		require.NotEmpty(t, batch)
		assert.InDelta(t, batch[len(batch)-1], ma.Value(), 1e-9)
	})
}

func TestExponentialMAStreaming(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	ema := NewEMA(3)
	assert.Equal(t, "EMA(3)", ema.Name())
	for _, c := range closes {
		ema.Update(c)
	}
	require.True(t, ema.Ready())

	batch := EMA(closes, 3)
	assert.InDelta(t, batch[len(batch)-1], ema.Value(), 1e-9)

	ema.Reset()
	assert.False(t, ema.Ready())
	assert.Equal(t, 0.0, ema.Value())
}

func TestWilderRSIStreaming(t *testing.T) {
	series := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64}

	rsi := NewRSI(14)
	assert.Equal(t, "RSI(14)", rsi.Name())
	assert.Equal(t, 15, rsi.Warmup())

	// Neutral sentinel during warmup, matching the batch contract.
	rsi.Update(series[0])
	assert.Equal(t, RSINeutral, rsi.Value())

	for _, c := range series[1:] {
		rsi.Update(c)
	}
	require.True(t, rsi.Ready())
	assert.InDelta(t, RSI(series, 14), rsi.Value(), 1e-9)
}

func TestWilderRSIStreamingExtremes(t *testing.T) {
	up := NewRSI(5)
	down := NewRSI(5)
	for i := 0; i < 10; i++ {
		up.Update(float64(100 + i))
		down.Update(float64(100 - i))
	}
	assert.InDelta(t, 100.0, up.Value(), 1e-9)
	assert.InDelta(t, 0.0, down.Value(), 1e-9)
}
