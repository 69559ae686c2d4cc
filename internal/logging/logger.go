// Package logging decouples the planner from a concrete logging framework.
// Components take a Logger by injection and fall back to the package default.
package logging

import "sync"

// Logger defines the structured logging surface used throughout the planner.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewLogrusAdapter("info", "text")
)

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the process-wide default logger. A nil logger is ignored.
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetAllLogLevels changes the level of the default logger when it is backed by logrus.
func SetAllLogLevels(level string) {
	if adapter, ok := GetLogger().(*LogrusAdapter); ok {
		adapter.SetLevel(level)
	}
}

// OrDefault returns logger, or the default logger when logger is nil.
func OrDefault(logger Logger) Logger {
	if logger == nil {
		return GetLogger()
	}
	return logger
}
