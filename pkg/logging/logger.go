package logging

import (
	"fmt"
	"strings"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel converts a config string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger is the structured logging interface used by the engines and
// the CLI. Long-running passes attach an operation ID via WithFields so
// every entry of one run can be correlated.
type Logger interface {
	// Debug logs a debug message
	Debug(msg string, fields Fields)

	// Info logs an info message
	Info(msg string, fields Fields)

	// Warn logs a warning message
	Warn(msg string, fields Fields)

	// Error logs an error message
	Error(msg string, err error, fields Fields)

	// WithFields returns a logger that attaches fields to every entry
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}
