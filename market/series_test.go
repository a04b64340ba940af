package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `time,price,volume,bid,ask
2024-01-01T14:30:00Z,100.5,1000,100.4,100.6
2024-01-01T14:31:00Z,101.0,1500,100.9,101.1
`)

	s, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, s, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC), s[0].Time)
	assert.InDelta(t, 100.5, s[0].Price, 1e-9)
	assert.InDelta(t, 1000.0, s[0].Volume, 1e-9)
	assert.InDelta(t, 100.4, s[0].Bid, 1e-9)
	assert.InDelta(t, 100.6, s[0].Ask, 1e-9)

	assert.Equal(t, []float64{100.5, 101.0}, s.Closes())
}

func TestLoadCSVMinimalColumns(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, ",100\n,101\n,102\n")
	s, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.True(t, s[0].Time.IsZero())
	assert.Equal(t, []float64{100, 101, 102}, s.Closes())
}

func TestLoadCSVBadRows(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(writeCSV(t, "time,price\n2024-01-01T00:00:00Z,abc\n"))
	assert.Error(t, err)

	_, err = LoadCSV(writeCSV(t, "time,price\nnot-a-time,100\n"))
	assert.Error(t, err)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReturns(t *testing.T) {
	t.Parallel()

	s := Series{{Price: 100}, {Price: 110}, {Price: 99}}
	r := s.Returns()
	require.Len(t, r, 2)
	assert.InDelta(t, 0.10, r[0], 1e-9)
	assert.InDelta(t, -0.10, r[1], 1e-9)

	assert.Nil(t, Series{{Price: 100}}.Returns())

	// Zero prior price yields a zero return, not a division by zero.
	z := Series{{Price: 0}, {Price: 5}}.Returns()
	require.Len(t, z, 1)
	assert.Equal(t, 0.0, z[0])
}
