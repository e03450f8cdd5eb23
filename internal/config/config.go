// Package config holds the runtime settings for simclust.
//
// Settings are layered: DefaultConfig, then an optional YAML file (Load),
// then SIMCLUST_* environment variables (ApplyEnv). Command-line flags are
// applied last by the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/simclust/internal/records"
)

// Config holds settings shared by every metric subcommand
type Config struct {
	// Workers is the number of goroutines evaluating pairs
	// 0 selects runtime.NumCPU()
	// Default: 0, Range: 0-1024
	Workers int `yaml:"workers"`

	// BatchSize is the number of pairs a worker evaluates per task
	// Larger batches = less scheduling overhead, coarser load balancing
	// Default: 4096, Range: 1-1048576
	BatchSize int `yaml:"batch_size"`

	// LogLevel is the minimum level written to stderr
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// InputSeparator frames the input stream
	// Options: "line", "paragraph", "null" (and their short forms)
	// Default: "line"
	InputSeparator string `yaml:"irs"`

	// FieldSeparator delimits records within a cluster on output
	// Options: "line", "0", ":"
	// Default: "line"
	FieldSeparator string `yaml:"ofs"`

	// RecordSeparator delimits clusters on output
	// Options: "double", "line", "0"
	// Default: "double"
	RecordSeparator string `yaml:"ors"`

	// Dedupe collapses content-equal records before clustering
	// Default: false (every record is distinct by position)
	Dedupe bool `yaml:"dedupe"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Workers:         0,
		BatchSize:       4096,
		LogLevel:        "warn",
		InputSeparator:  "line",
		FieldSeparator:  "line",
		RecordSeparator: "double",
		Dedupe:          false,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative (got %d)", c.Workers)
	}
	if c.Workers > 1024 {
		return fmt.Errorf("workers too large (got %d, max 1024)", c.Workers)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive (got %d)", c.BatchSize)
	}
	if c.BatchSize > 1<<20 {
		return fmt.Errorf("batch_size too large (got %d, max %d)", c.BatchSize, 1<<20)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if _, err := records.ParseInputMode(c.InputSeparator); err != nil {
		return err
	}
	if _, err := records.ParseFieldSeparator(c.FieldSeparator); err != nil {
		return err
	}
	if _, err := records.ParseRecordSeparator(c.RecordSeparator); err != nil {
		return err
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, BatchSize: %d, LogLevel: %s, IRS: %q, OFS: %q, ORS: %q, Dedupe: %t}",
		c.Workers, c.BatchSize, c.LogLevel, c.InputSeparator, c.FieldSeparator, c.RecordSeparator, c.Dedupe,
	)
}

// Load reads a YAML config file on top of the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	cfg.LogLevel = normalizeLevel(cfg.LogLevel)
	return cfg, nil
}

// ApplyEnv overlays SIMCLUST_* environment variables onto c
//
// Environment variables:
//   - SIMCLUST_WORKERS: Number of evaluation goroutines (default: 0 = NumCPU)
//   - SIMCLUST_BATCH_SIZE: Pairs per worker task (default: 4096)
//   - SIMCLUST_LOG_LEVEL: debug, info, warn or error (default: warn)
//   - SIMCLUST_IRS: Input record separator (default: line)
//   - SIMCLUST_OFS: Output field separator (default: line)
//   - SIMCLUST_ORS: Output record separator (default: double)
//   - SIMCLUST_DEDUPE: Collapse content-equal records (default: false)
//
// Returns an error if any environment variable has an invalid value.
func (c *Config) ApplyEnv() error {
	if err := parseEnvInt("SIMCLUST_WORKERS", &c.Workers); err != nil {
		return err
	}
	if err := parseEnvInt("SIMCLUST_BATCH_SIZE", &c.BatchSize); err != nil {
		return err
	}
	parseEnvString("SIMCLUST_LOG_LEVEL", &c.LogLevel)
	c.LogLevel = normalizeLevel(c.LogLevel)
	parseEnvString("SIMCLUST_IRS", &c.InputSeparator)
	parseEnvString("SIMCLUST_OFS", &c.FieldSeparator)
	parseEnvString("SIMCLUST_ORS", &c.RecordSeparator)
	if err := parseEnvBool("SIMCLUST_DEDUPE", &c.Dedupe); err != nil {
		return err
	}
	return nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvString(key string, dest *string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dest = value
	}
}

// normalizeLevel accepts log levels in any case ("DEBUG", "Warn").
func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
