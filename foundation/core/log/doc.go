// Package log provides structured logging for pibench.
//
// Package: log
// Title: pibench Structured Logging
// Description: Leveled, structured logging with JSON and text output, context
//              fields, correlation ids and a Timer that measures an operation
//              on the monotonic clock and logs its completion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-16 v0.2.0: Synchronous writer only, Timer backs the benchmark's timed region
//
// Usage:
//
//	import pblog "github.com/msto63/pibench/foundation/core/log"
//
//	logger := pblog.NewWithConfig(pblog.Config{
//		Level:  pblog.LevelInfo,
//		Format: pblog.FormatText,
//		Output: os.Stderr,
//		Name:   "bench",
//	})
//	logger.Info("warm-up finished", pblog.Int("reps", 3))
//
//	timer := logger.StartTimer("timed region")
//	// ... work ...
//	elapsed := timer.Stop()
package log
