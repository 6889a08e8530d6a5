// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation on the monotonic clock
//              and logs its completion. The benchmark's timed region is a
//              Timer: elapsed time is captured before anything is logged.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-16 v0.2.0: Injectable clock for deterministic tests

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
	elapsed   time.Duration
	now       func() time.Time
}

// NewTimer creates and starts a timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return NewTimerWithClock(logger, operation, time.Now)
}

// NewTimerWithClock creates a timer that reads time from now. time.Now
// carries a monotonic reading, so wall-clock adjustments do not skew results.
func NewTimerWithClock(logger *Logger, operation string, now func() time.Time) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: now(),
		fields:    make(Fields),
		level:     LevelDebug,
		now:       now,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since start, or the final duration once stopped
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return t.now().Sub(t.startTime)
}

// Stop stops the timer, logs the elapsed time and returns it. Further calls
// return the same duration without logging again.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	t.elapsed = t.now().Sub(t.startTime)
	t.stopped = true

	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(t.elapsed.Nanoseconds()) / 1e6
	t.fields["duration"] = t.elapsed.String()

	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, t.fields)
	}
	return t.elapsed
}

// StopWithError stops the timer and logs the failure at error level
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return t.elapsed
	}
	t.elapsed = t.now().Sub(t.startTime)
	t.stopped = true

	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(t.elapsed.Nanoseconds()) / 1e6

	if t.logger != nil {
		t.logger.log(LevelError, t.operation+" failed", err, t.fields)
	}
	return t.elapsed
}

// IsRunning returns true if the timer has not been stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

// StartTime returns the time when the timer was started
func (t *Timer) StartTime() time.Time {
	return t.startTime
}
