package cli

import (
	"fmt"

	"github.com/twinpane/twinpane/internal/platform"
	"github.com/twinpane/twinpane/pkg/config"
	"github.com/twinpane/twinpane/pkg/logging"
	"github.com/twinpane/twinpane/pkg/output"
	"github.com/twinpane/twinpane/pkg/storage"
)

// loadConfig loads the configuration file named by --config, or the
// default location, and folds the global flags on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if globalFlags.ConfigFile != "" {
		cfg, err = config.LoadFromFile(globalFlags.ConfigFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if globalFlags.Output != "" {
		cfg.Output.Format = globalFlags.Output
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
	if globalFlags.NoColor {
		cfg.Output.Color = false
	}
	if globalFlags.NoProgress {
		cfg.Output.Progress = false
	}
	if globalFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = globalFlags.LogFile
	}
	if globalFlags.LogLevel != "" {
		cfg.Logging.Level = globalFlags.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the configured logger, or a null logger when
// file logging is disabled.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     logging.Format(cfg.Logging.Format),
		Level:      level,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// newFormatter builds the configured output formatter.
func newFormatter(cfg *config.Config) output.Formatter {
	return output.ByName(cfg.Output.Format, cfg.Output.Color)
}

// showProgress reports whether a progress bar should render: only for
// human output on an interactive run.
func showProgress(cfg *config.Config) bool {
	return cfg.Output.Progress && cfg.Output.Format == "human" && !cfg.Output.Quiet
}

// openPanes validates the two positional path arguments and opens a
// backend for each.
func openPanes(leftPath, rightPath string) (*storage.Local, *storage.Local, error) {
	for _, path := range []string{leftPath, rightPath} {
		if err := platform.ValidatePath(path); err != nil {
			return nil, nil, err
		}
	}

	left, err := storage.NewLocal(platform.NormalizePath(leftPath))
	if err != nil {
		return nil, nil, fmt.Errorf("left pane: %w", err)
	}
	right, err := storage.NewLocal(platform.NormalizePath(rightPath))
	if err != nil {
		left.Close()
		return nil, nil, fmt.Errorf("right pane: %w", err)
	}
	return left, right, nil
}
