// Package config holds the operator-facing collection parameters, loaded
// from an optional TOML file with flag overrides applied by the caller.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Collector CollectorConfig `toml:"collector"`
	Source    SourceConfig    `toml:"source"`
	Output    OutputConfig    `toml:"output"`
}

// CollectorConfig holds collection loop settings.
type CollectorConfig struct {
	TargetMatches       int     `toml:"target_matches"`
	BatchSize           int     `toml:"batch_size"`
	RequestDelaySeconds float64 `toml:"request_delay_seconds"`
	Resume              bool    `toml:"resume"`
	CheckpointPath      string  `toml:"checkpoint_path"`
}

// RequestDelay returns the inter-request delay as a duration.
func (c CollectorConfig) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds * float64(time.Second))
}

// SourceConfig holds remote API settings.
type SourceConfig struct {
	BaseURL string `toml:"base_url"`
}

// OutputConfig holds sink file settings. Empty paths mean timestamped
// filenames derived from Prefix, matching a fresh run; resumed runs
// should pin explicit paths so appends land in the same files.
type OutputConfig struct {
	Prefix      string `toml:"prefix"`
	MatchesPath string `toml:"matches_path"`
	PlayersPath string `toml:"players_path"`
}

// MatchesFile returns the matches sink path, generating a timestamped
// name when none is configured.
func (o OutputConfig) MatchesFile(now time.Time) string {
	if o.MatchesPath != "" {
		return o.MatchesPath
	}
	return fmt.Sprintf("%s_matches_%s.csv", o.Prefix, now.Format("20060102_1504"))
}

// PlayersFile returns the players sink path, generating a timestamped
// name when none is configured.
func (o OutputConfig) PlayersFile(now time.Time) string {
	if o.PlayersPath != "" {
		return o.PlayersPath
	}
	return fmt.Sprintf("%s_players_%s.csv", o.Prefix, now.Format("20060102_1504"))
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		Collector: CollectorConfig{
			TargetMatches:       50000,
			BatchSize:           100,
			RequestDelaySeconds: 1.0,
			Resume:              false,
			CheckpointPath:      "progress.json",
		},
		Source: SourceConfig{
			BaseURL: "", // empty means the public OpenDota API
		},
		Output: OutputConfig{
			Prefix: "dota",
		},
	}
}

// LoadConfig loads configuration: defaults, then the TOML file when a
// path is given. Flag overrides are applied by the caller.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Collector.TargetMatches <= 0 {
		return fmt.Errorf("collector target_matches must be positive")
	}
	if c.Collector.BatchSize <= 0 {
		return fmt.Errorf("collector batch_size must be positive")
	}
	if c.Collector.RequestDelaySeconds < 0 {
		return fmt.Errorf("collector request_delay_seconds must not be negative")
	}
	if c.Collector.CheckpointPath == "" {
		return fmt.Errorf("collector checkpoint_path must be specified")
	}
	if c.Output.Prefix == "" && (c.Output.MatchesPath == "" || c.Output.PlayersPath == "") {
		return fmt.Errorf("output prefix must be specified when sink paths are not")
	}
	return nil
}
