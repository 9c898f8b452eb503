package logging

// NullLogger discards all output. Used when logging is disabled.
type NullLogger struct{}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Debug does nothing
func (l *NullLogger) Debug(msg string, fields Fields) {}

// Info does nothing
func (l *NullLogger) Info(msg string, fields Fields) {}

// Warn does nothing
func (l *NullLogger) Warn(msg string, fields Fields) {}

// Error does nothing
func (l *NullLogger) Error(msg string, err error, fields Fields) {}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}

// Close does nothing
func (l *NullLogger) Close() error {
	return nil
}
