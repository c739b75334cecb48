// Package config loads the persistent paperscope configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the persistent application configuration.
type Config struct {
	// Server is the base URL of the paper scraper service.
	Server string `yaml:"server"`

	// PerPage is the listing page size (1-100).
	PerPage int `yaml:"per_page"`

	// Timings, in milliseconds.
	PollMs           int `yaml:"poll_ms"`
	SearchDebounceMs int `yaml:"search_debounce_ms"`
	ScoreDebounceMs  int `yaml:"score_debounce_ms"`
	RequestTimeoutMs int `yaml:"request_timeout_ms"`

	// EvaluateRows is the default row count for the evaluate job (1-1000).
	EvaluateRows int `yaml:"evaluate_rows"`
}

// Default returns sensible defaults: local server, 3s polling, a short
// debounce for free text and a longer one for score bounds.
func Default() *Config {
	return &Config{
		Server:           "http://localhost:8000",
		PerPage:          20,
		PollMs:           3000,
		SearchDebounceMs: 300,
		ScoreDebounceMs:  500,
		RequestTimeoutMs: 10000,
		EvaluateRows:     5,
	}
}

// DataDir returns the paperscope data directory (~/.paperscope).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paperscope")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// Load reads config from disk, or returns defaults. A missing file is
// written back so the user has something to edit. PAPERSCOPE_SERVER
// overrides the server URL either way.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			_ = cfg.Save()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
	}
	cfg.normalize()
	cfg.applyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(DataDir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(Path(), data, 0644)
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// SearchDebounce returns the free-text debounce interval.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

// ScoreDebounce returns the score-range debounce interval.
func (c *Config) ScoreDebounce() time.Duration {
	return time.Duration(c.ScoreDebounceMs) * time.Millisecond
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func (c *Config) applyEnv() {
	if s := os.Getenv("PAPERSCOPE_SERVER"); s != "" {
		c.Server = s
	}
}

// normalize clamps user-edited values back into service bounds.
func (c *Config) normalize() {
	if c.PerPage < 1 || c.PerPage > 100 {
		c.PerPage = 20
	}
	if c.PollMs < 500 {
		c.PollMs = 3000
	}
	if c.SearchDebounceMs < 1 {
		c.SearchDebounceMs = 300
	}
	if c.ScoreDebounceMs < 1 {
		c.ScoreDebounceMs = 500
	}
	if c.RequestTimeoutMs < 1000 {
		c.RequestTimeoutMs = 10000
	}
	if c.EvaluateRows < 1 || c.EvaluateRows > 1000 {
		c.EvaluateRows = 5
	}
}
