package config

import (
	"github.com/twinpane/twinpane/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Diff        DiffConfig        `yaml:"diff"`
	Sync        SyncConfig        `yaml:"sync"`
	Digest      DigestConfig      `yaml:"digest"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Include     []string          `yaml:"include"`
	Exclude     []string          `yaml:"exclude"`
}

// CompareConfig holds directory comparison settings
type CompareConfig struct {
	BySize               bool `yaml:"by_size"`
	ByDate               bool `yaml:"by_date"`
	ByContent            bool `yaml:"by_content"`
	DateToleranceSeconds int  `yaml:"date_tolerance_seconds"`
	CaseSensitive        bool `yaml:"case_sensitive"`
	ShowIdentical        bool `yaml:"show_identical"`
	Recurse              bool `yaml:"recurse"`
}

// DiffConfig holds text diff settings
type DiffConfig struct {
	Window           int  `yaml:"window"`
	IgnoreCase       bool `yaml:"ignore_case"`
	IgnoreWhitespace bool `yaml:"ignore_whitespace"`
	IgnoreBlankLines bool `yaml:"ignore_blank_lines"`
}

// SyncConfig holds synchronization settings
type SyncConfig struct {
	Direction        models.SyncDirection `yaml:"direction"`
	DeleteExtraneous bool                 `yaml:"delete_extraneous"`
	CompareBySize    bool                 `yaml:"compare_by_size"`
}

// DigestConfig holds checksum settings
type DigestConfig struct {
	Algorithms []string `yaml:"algorithms"`
	Uppercase  bool     `yaml:"uppercase"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers     int   `yaml:"max_workers"`
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
	Color    bool   `yaml:"color"`    // Colorize human output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	File       string `yaml:"file"`   // Log file path (empty = disabled)
	MaxSize    int64  `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			BySize:               true,
			ByDate:               true,
			ByContent:            false,
			DateToleranceSeconds: 2,
			CaseSensitive:        false,
			ShowIdentical:        false,
			Recurse:              true,
		},
		Diff: DiffConfig{
			Window: 1000,
		},
		Sync: SyncConfig{
			Direction:        models.DirectionLeftToRight,
			DeleteExtraneous: false,
			CompareBySize:    false,
		},
		Digest: DigestConfig{
			Algorithms: []string{"md5", "sha256"},
			Uppercase:  false,
		},
		Performance: PerformanceConfig{
			MaxWorkers:     4,
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
			Color:    true,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "json",
			Level:      "info",
			File:       "",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
		Exclude: []string{
			"*.tmp",
			".git/**",
		},
	}
}

// validAlgorithms mirrors the digest engine's supported set
var validAlgorithms = map[string]bool{
	"crc32":  true,
	"md5":    true,
	"sha1":   true,
	"sha256": true,
	"sha512": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compare.DateToleranceSeconds < 0 {
		return &models.ValidationError{
			Field:   "compare.date_tolerance_seconds",
			Message: "must not be negative",
		}
	}

	if c.Diff.Window < 1 {
		return &models.ValidationError{
			Field:   "diff.window",
			Message: "must be at least 1",
		}
	}

	switch c.Sync.Direction {
	case models.DirectionLeftToRight, models.DirectionRightToLeft, models.DirectionBidirectional:
	default:
		return &models.ValidationError{
			Field:   "sync.direction",
			Message: "must be 'left-to-right', 'right-to-left', or 'bidirectional'",
		}
	}

	for _, algo := range c.Digest.Algorithms {
		if !validAlgorithms[algo] {
			return &models.ValidationError{
				Field:   "digest.algorithms",
				Message: "unknown algorithm: " + algo,
			}
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// Algorithms converts the configured algorithm names into model values.
func (c *Config) Algorithms() []models.Algorithm {
	algos := make([]models.Algorithm, 0, len(c.Digest.Algorithms))
	for _, name := range c.Digest.Algorithms {
		algos = append(algos, models.Algorithm(name))
	}
	return algos
}
