// ============================================================================
// pibench - Pi CPU Benchmark
// ============================================================================
//
// Package:     bench
// Description: Benchmark harness: warm-up, timed parallel region, result
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package bench

import (
	"context"
	"time"

	"github.com/google/uuid"

	pberror "github.com/msto63/pibench/foundation/core/error"
	pblog "github.com/msto63/pibench/foundation/core/log"
	"github.com/msto63/pibench/internal/pi"
	"github.com/msto63/pibench/pkg/core/logging"
)

// Harness runs one benchmark: a sequential warm-up followed by the timed
// region on the Runner
type Harness struct {
	// Compute is used for the warm-up and by the default runner.
	// Nil selects pi.Compute with default settings.
	Compute ComputeFunc

	// Runner executes the timed region. Nil selects a GoroutinePool.
	Runner Runner

	Logger *logging.Logger

	// now is the clock for the timed region, replaced in tests
	now func() time.Time
}

// Run validates p, warms up, times the parallel region and returns the result
func (h *Harness) Run(ctx context.Context, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	compute := h.Compute
	if compute == nil {
		compute = PiCompute(pi.Calculator{})
	}
	runner := h.Runner
	if runner == nil {
		runner = &GoroutinePool{Compute: compute}
	}
	now := h.now
	if now == nil {
		now = time.Now
	}

	runID := uuid.NewString()
	logger := h.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithRunID(runID)

	warmup := WarmupReps(p.RepsPerThread)
	logger.Debug("warm-up started", "reps", warmup, "digits", p.Digits)
	for i := 0; i < warmup; i++ {
		if err := compute(p.Digits); err != nil {
			return Result{}, pberror.Wrap(err, "warm-up failed").
				WithOperation("bench.Harness.Run").
				WithDetail("run_id", runID)
		}
	}

	tasks := Tasks(p)
	startedAt := time.Now()
	logger.Info("timed region started",
		"tasks", len(tasks), "workers", p.Workers, "mode", string(runner.Mode()))

	timer := pblog.NewTimerWithClock(logger.Logger, "benchmark", now).
		WithLevel(pblog.LevelInfo).
		WithField("tasks", len(tasks))
	if err := runner.Run(ctx, tasks, p.Workers); err != nil {
		timer.StopWithError(err)
		return Result{}, pberror.Wrap(err, "benchmark run failed").
			WithOperation("bench.Harness.Run").
			WithDetail("run_id", runID)
	}
	elapsed := timer.Stop()

	result := NewResult(p, elapsed)
	result.RunID = runID
	result.StartedAt = startedAt
	result.Mode = runner.Mode()

	logger.Info("benchmark finished",
		"total_time_ms", result.TotalTimeMs, "calcs_per_sec", result.CalcsPerSec)
	return result, nil
}
