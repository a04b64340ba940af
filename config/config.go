// Package config loads the engine configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/finlock/daytrade/compliance"
)

// Config represents the complete engine configuration
type Config struct {
	Compliance ComplianceConfig `json:"compliance" yaml:"compliance"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// ComplianceConfig contains the PDT rule parameters
type ComplianceConfig struct {
	EquityThreshold float64  `json:"equity_threshold" yaml:"equity_threshold"`
	DayTradeLimit   int      `json:"day_trade_limit" yaml:"day_trade_limit"`
	WindowDays      int      `json:"window_days" yaml:"window_days"`
	Timezone        string   `json:"timezone" yaml:"timezone"`
	Holidays        []string `json:"holidays,omitempty" yaml:"holidays,omitempty"` // YYYY-MM-DD
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns the FINRA defaults with no journal configured.
func Default() *Config {
	return &Config{
		Compliance: ComplianceConfig{
			EquityThreshold: 25000,
			DayTradeLimit:   3,
			WindowDays:      5,
			Timezone:        "America/New_York",
		},
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compliance.EquityThreshold < 0 {
		return fmt.Errorf("compliance.equity_threshold must not be negative")
	}
	if c.Compliance.DayTradeLimit <= 0 {
		return fmt.Errorf("compliance.day_trade_limit must be positive")
	}
	if c.Compliance.WindowDays <= 0 {
		return fmt.Errorf("compliance.window_days must be positive")
	}
	if _, err := time.LoadLocation(c.Compliance.Timezone); err != nil {
		return fmt.Errorf("compliance.timezone: %w", err)
	}
	for _, h := range c.Compliance.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("compliance.holidays: %q: %w", h, err)
		}
	}
	switch c.Journal.Type {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be \"csv\" or \"sqlite\", got %q", c.Journal.Type)
	}
	if c.Journal.Type == "csv" && c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required for the csv journal")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required for the sqlite journal")
	}
	return nil
}

// EngineConfig converts the compliance section into the engine's Config.
func (c *ComplianceConfig) EngineConfig() (compliance.Config, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return compliance.Config{}, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return compliance.Config{
		EquityThreshold: c.EquityThreshold,
		DayTradeLimit:   c.DayTradeLimit,
		WindowDays:      c.WindowDays,
		Location:        loc,
	}, nil
}

// Calendar builds the trading calendar from the timezone and holiday list.
func (c *ComplianceConfig) Calendar() (*compliance.WeekdayCalendar, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	holidays := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		t, err := time.ParseInLocation("2006-01-02", h, loc)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h, err)
		}
		holidays = append(holidays, t)
	}
	return compliance.NewWeekdayCalendar(loc, holidays), nil
}
