// ============================================================================
// pibench - Pi CPU Benchmark
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating Foundation loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"strings"

	pblog "github.com/msto63/pibench/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, written as the logger field
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "json" or "text" (default: json)
	Format string

	// Output defaults to stderr. stdout is reserved for the report line.
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration. The warn level keeps
// a successful benchmark run silent.
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "json",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *pblog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format := pblog.FormatJSON
	if strings.EqualFold(cfg.Format, "text") {
		format = pblog.FormatText
	}

	return pblog.NewWithConfig(pblog.Config{
		Level:  parseLevel(cfg.Level),
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// parseLevel converts a string level to a Foundation level. Unknown values
// fall back to the default level.
func parseLevel(level string) pblog.Level {
	parsed, err := pblog.ParseLevel(level)
	if err != nil {
		return pblog.DefaultLevel()
	}
	return parsed
}

// Logger wraps the Foundation logger with a key/value call style
type Logger struct {
	*pblog.Logger
	name string
}

// New creates a key/value logger with the default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewLogger(DefaultLoggerConfig(name)),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger
func Wrap(base *pblog.Logger) *Logger {
	if base == nil {
		base = pblog.Nop()
	}
	return &Logger{Logger: base, name: base.Name()}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return Wrap(pblog.Nop())
}

// Named returns a copy of the logger with a sub-component name
func (l *Logger) Named(name string) *Logger {
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	return &Logger{Logger: l.Logger.WithName(full), name: full}
}

// WithRunID returns a copy of the logger tagged with a benchmark run id
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{Logger: l.Logger.WithCorrelationID(runID), name: l.name}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to Foundation fields. A trailing key
// without value and non-string keys are dropped.
func toFields(keysAndValues ...interface{}) pblog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(pblog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
