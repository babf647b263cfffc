package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hotcold/internal/interval"
)

// Config represents the application configuration
type Config struct {
	API       APIConfig       `yaml:"api"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	Intervals IntervalsConfig `yaml:"intervals"`
	Filter    FilterConfig    `yaml:"filter"`
}

// APIConfig holds exchange API settings
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	RateLimit int    `yaml:"rate_limit"` // requests per minute
}

// ScannerConfig holds scan pass settings
type ScannerConfig struct {
	Workers int           `yaml:"workers"` // shared in-flight request ceiling
	Timeout time.Duration `yaml:"timeout"`
	TopN    int           `yaml:"top"`
	Refresh time.Duration `yaml:"refresh"` // watch-mode cadence
	Watch   bool          `yaml:"watch"`
}

// IntervalsConfig holds the comparison window durations
type IntervalsConfig struct {
	Current string `yaml:"current"`
	Short   string `yaml:"short"`
	Big     string `yaml:"big"`
	// Simple selects single-window mode using the Simple duration only.
	SimpleMode bool   `yaml:"simple_mode"`
	Simple     string `yaml:"simple"`
}

// FilterConfig holds classification thresholds
type FilterConfig struct {
	ChangeThreshold float64 `yaml:"change_threshold"` // percent, drives highlighting
	TrimRatio       float64 `yaml:"trim_ratio"`       // top/bottom aggregate fraction
	SpikeFilter     bool    `yaml:"spike_filter"`
	SpikeThreshold  float64 `yaml:"spike_threshold"` // percent
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "",
			RateLimit: 1200,
		},
		Scanner: ScannerConfig{
			Workers: 20,
			Timeout: 120 * time.Second,
			TopN:    5,
			Refresh: 5 * time.Second,
		},
		Intervals: IntervalsConfig{
			Current: "1m",
			Short:   "15m",
			Big:     "1h",
			Simple:  "1h",
		},
		Filter: FilterConfig{
			ChangeThreshold: 10.0,
			TrimRatio:       0.5,
			SpikeThreshold:  5.0,
		},
	}
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Override with environment variables if set
	if url := os.Getenv("HOTCOLD_BASE_URL"); url != "" {
		cfg.API.BaseURL = url
	}

	return cfg, nil
}

// Validate checks the configuration, resolving every interval so malformed
// durations fail once at startup.
func (c *Config) Validate() error {
	if c.Scanner.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Scanner.TopN < 1 {
		return fmt.Errorf("top must be at least 1")
	}
	if c.Scanner.Watch && c.Scanner.Refresh <= 0 {
		return fmt.Errorf("refresh must be positive in watch mode")
	}
	if c.Filter.TrimRatio <= 0 || c.Filter.TrimRatio > 1 {
		return fmt.Errorf("trim_ratio must be in (0, 1]")
	}

	durations := []string{c.Intervals.Current, c.Intervals.Short, c.Intervals.Big}
	if c.Intervals.SimpleMode {
		durations = []string{c.Intervals.Simple}
	}
	for _, d := range durations {
		if _, err := interval.Resolve(d); err != nil {
			return err
		}
	}
	return nil
}
