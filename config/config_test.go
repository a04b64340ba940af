package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
compliance:
  equity_threshold: 30000
  day_trade_limit: 4
  window_days: 5
  timezone: America/New_York
  holidays:
    - "2024-01-01"
    - "2024-07-04"
journal:
  type: sqlite
  db_path: /tmp/journal.db
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, cfg.Compliance.EquityThreshold)
	assert.Equal(t, 4, cfg.Compliance.DayTradeLimit)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Len(t, cfg.Compliance.Holidays, 2)
}

func TestLoadJSONFallback(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "compliance": {
    "equity_threshold": 25000,
    "day_trade_limit": 3,
    "window_days": 5,
    "timezone": "UTC"
  },
  "journal": {"type": "csv", "path": "trades.csv"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Compliance.Timezone)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestDefaultsApplyToSparseFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
compliance:
  equity_threshold: 25000
  day_trade_limit: 3
  window_days: 5
  timezone: America/New_York
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Journal.Type)
	assert.Equal(t, 25000.0, cfg.Compliance.EquityThreshold)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero limit", func(c *Config) { c.Compliance.DayTradeLimit = 0 }},
		{"zero window", func(c *Config) { c.Compliance.WindowDays = 0 }},
		{"negative threshold", func(c *Config) { c.Compliance.EquityThreshold = -1 }},
		{"bad timezone", func(c *Config) { c.Compliance.Timezone = "Mars/Olympus" }},
		{"bad holiday", func(c *Config) { c.Compliance.Holidays = []string{"Jan 1"} }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "redis" }},
		{"csv without path", func(c *Config) { c.Journal.Type = "csv" }},
		{"sqlite without db path", func(c *Config) { c.Journal.Type = "sqlite" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEngineConfigAndCalendar(t *testing.T) {
	cfg := Default()
	cfg.Compliance.Holidays = []string{"2024-01-01"}

	engCfg, err := cfg.Compliance.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", engCfg.Location.String())
	assert.Equal(t, 25000.0, engCfg.EquityThreshold)

	cal, err := cfg.Compliance.Calendar()
	require.NoError(t, err)
	newYears := time.Date(2024, 1, 1, 12, 0, 0, 0, engCfg.Location)
	assert.False(t, cal.IsTradingDay(newYears))
	assert.True(t, cal.IsTradingDay(newYears.AddDate(0, 0, 1)))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Journal = JournalConfig{Type: "csv", Path: "trades.csv"}

	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Compliance, got.Compliance)
		assert.Equal(t, cfg.Journal, got.Journal)
	}
}
